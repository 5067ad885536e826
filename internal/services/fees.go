package services

import (
	"fmt"
	"math/rand"
	"time"

	"ristorante/internal/models"
)

// Card processing costs passed on to the customer: 3.3% of the subtotal plus
// a flat 10 MXN.
const (
	cardSurchargeRate = 0.033
	cardSurchargeFlat = 10.0
)

// CardSurcharge returns the processing fee added to card payments.
func CardSurcharge(subtotal float64) float64 {
	return subtotal*cardSurchargeRate + cardSurchargeFlat
}

// TotalWithSurcharge returns the amount charged when paying by card. Cash
// payments never incur the surcharge.
func TotalWithSurcharge(subtotal float64) float64 {
	return subtotal + CardSurcharge(subtotal)
}

// referencePrefixes maps payment methods to the prefix printed on receipts.
var referencePrefixes = map[models.PaymentMethod]string{
	models.PaymentCash:     "EFE",
	models.PaymentCard:     "TDC",
	models.PaymentWallet:   "MP",
	models.PaymentTransfer: "TRF",
}

// GeneratePaymentReference produces a human-facing reference of the form
// PREFIX-{last 6 of epoch millis}-{3-digit random}. It is not an idempotency
// key; the time+random composition just makes collisions astronomically rare.
func GeneratePaymentReference(method models.PaymentMethod) string {
	prefix, ok := referencePrefixes[method]
	if !ok {
		prefix = "PAY"
	}
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return fmt.Sprintf("%s-%s-%03d", prefix, millis[len(millis)-6:], rand.Intn(1000))
}
