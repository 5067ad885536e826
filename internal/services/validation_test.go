package services_test

import (
	"testing"

	"ristorante/internal/models"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"7441234567",
		"5512345678",
		"744-123-4567",
		"(744) 123 4567",
	}
	for _, phone := range valid {
		assert.True(t, services.ValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"1234567890",  // leading 1
		"0441234567",  // leading 0
		"744123456",   // nine digits
		"74412345678", // eleven digits
		"telefono",
	}
	for _, phone := range invalid {
		assert.False(t, services.ValidPhone(phone), "expected %q to be invalid", phone)
	}
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "744-123-4567", services.FormatPhone("7441234567"))
	assert.Equal(t, "744-123-4567", services.FormatPhone("(744) 123-4567"))
	// Anything that is not ten digits passes through unchanged.
	assert.Equal(t, "12345", services.FormatPhone("12345"))
}

func TestValidateCheckoutAddress_Pickup(t *testing.T) {
	// Pickup only needs a phone; address fields are ignored.
	err := services.ValidateCheckoutAddress(models.DeliveryToGo, models.Address{Phone: "7441234567"})
	assert.NoError(t, err)

	err = services.ValidateCheckoutAddress(models.DeliveryToGo, models.Address{})
	assert.Error(t, err)
	assert.True(t, services.IsValidation(err))
}

func TestValidateCheckoutAddress_HomeDelivery(t *testing.T) {
	addr := models.Address{
		Phone:          "7441234567",
		Street:         "Av. Insurgentes",
		ExteriorNumber: "12",
		Neighborhood:   "Centro",
		PostalCode:     "39010",
	}
	assert.NoError(t, services.ValidateCheckoutAddress(models.DeliveryHome, addr))

	missingStreet := addr
	missingStreet.Street = "  "
	err := services.ValidateCheckoutAddress(models.DeliveryHome, missingStreet)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "street")

	missingCP := addr
	missingCP.PostalCode = ""
	err = services.ValidateCheckoutAddress(models.DeliveryHome, missingCP)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postal_code")
}

func TestNewValidator_MXPhoneRule(t *testing.T) {
	v := services.NewValidator()

	type contact struct {
		Phone string `validate:"required,mxphone"`
	}
	assert.NoError(t, v.Struct(contact{Phone: "7441234567"}))
	assert.Error(t, v.Struct(contact{Phone: "1234567890"}))
}
