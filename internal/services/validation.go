package services

import (
	"fmt"
	"strings"

	"ristorante/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidPhone reports whether phone is a ten-digit Mexican number. Non-digit
// characters are stripped first; the leading digit must be 2-9 (1 and 0 are
// not valid area prefixes).
func ValidPhone(phone string) bool {
	digits := digitsOnly(phone)
	if len(digits) != 10 {
		return false
	}
	return digits[0] >= '2' && digits[0] <= '9'
}

// FormatPhone renders a ten-digit number as XXX-XXX-XXXX; anything else is
// returned unchanged.
func FormatPhone(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) != 10 {
		return phone
	}
	return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewValidator builds the validator instance used across the services, with
// the custom mxphone rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("mxphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}

// ValidateCheckoutAddress checks the contact step's input: the phone always,
// and the full address fields only for home delivery.
func ValidateCheckoutAddress(deliveryType models.DeliveryType, addr models.Address) error {
	if addr.Phone == "" {
		return &ValidationError{Field: "phone", Message: "phone number is required"}
	}
	if !ValidPhone(addr.Phone) {
		return &ValidationError{Field: "phone", Message: "must be 10 digits with a valid leading digit (2-9)"}
	}

	if deliveryType != models.DeliveryHome {
		return nil
	}

	required := []struct {
		field string
		value string
	}{
		{"street", addr.Street},
		{"exterior_number", addr.ExteriorNumber},
		{"neighborhood", addr.Neighborhood},
		{"postal_code", addr.PostalCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "required for home delivery"}
		}
	}
	return nil
}
