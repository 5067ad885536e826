package services_test

import (
	"regexp"
	"testing"

	"ristorante/internal/models"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCardSurcharge(t *testing.T) {
	// 3.3% of 100 plus the 10 peso fixed fee.
	assert.InDelta(t, 13.3, services.CardSurcharge(100), 0.0001)
	assert.InDelta(t, 10.0, services.CardSurcharge(0), 0.0001)
}

func TestTotalWithSurcharge(t *testing.T) {
	assert.InDelta(t, 113.3, services.TotalWithSurcharge(100), 0.0001)
	assert.InDelta(t, 144.29, services.TotalWithSurcharge(130), 0.0001)
}

func TestGeneratePaymentReference(t *testing.T) {
	cases := []struct {
		method models.PaymentMethod
		prefix string
	}{
		{models.PaymentCash, "EFE"},
		{models.PaymentCard, "TDC"},
		{models.PaymentWallet, "MP"},
		{models.PaymentTransfer, "TRF"},
	}

	for _, tc := range cases {
		ref := services.GeneratePaymentReference(tc.method)
		pattern := regexp.MustCompile(`^` + tc.prefix + `-\d{6}-\d{3}$`)
		assert.Regexp(t, pattern, ref, "reference %q for method %s", ref, tc.method)
	}
}

func TestGeneratePaymentReference_UnknownMethodUsesGenericPrefix(t *testing.T) {
	ref := services.GeneratePaymentReference(models.PaymentMethod("OTRO"))
	assert.Regexp(t, regexp.MustCompile(`^PAY-\d{6}-\d{3}$`), ref)
}
