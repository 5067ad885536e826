package services_test

import (
	"testing"
	"time"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func statuses(steps []services.TrackingStep) []models.OrderStatus {
	out := make([]models.OrderStatus, len(steps))
	for i, s := range steps {
		out[i] = s.Status
	}
	return out
}

func TestDetectPaymentMethod(t *testing.T) {
	// Card beats cash regardless of order.
	method, status := services.DetectPaymentMethod([]models.Payment{
		{Method: models.PaymentCash, Status: models.PaymentPending},
		{Method: models.PaymentCard, Status: models.PaymentApproved},
	})
	assert.Equal(t, models.PaymentCard, method)
	assert.Equal(t, models.PaymentApproved, status)

	// No payments defaults to pending cash.
	method, status = services.DetectPaymentMethod(nil)
	assert.Equal(t, models.PaymentCash, method)
	assert.Equal(t, models.PaymentPending, status)

	// Neither cash nor card: the most recent payment decides.
	method, _ = services.DetectPaymentMethod([]models.Payment{
		{Method: models.PaymentTransfer},
		{Method: models.PaymentWallet},
	})
	assert.Equal(t, models.PaymentWallet, method)
}

func TestStepsFor_HomeDelivery(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusOnTheWay, DeliveryType: models.DeliveryHome}
	payments := []models.Payment{{Method: models.PaymentCard, Status: models.PaymentApproved}}

	steps := services.StepsFor(order, payments)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusOnTheWay,
		models.OrderStatusDelivered,
	}, statuses(steps))

	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Completed)
	assert.True(t, steps[2].Completed)
	assert.True(t, steps[3].Active)
	assert.False(t, steps[4].Completed)
	assert.False(t, steps[4].Active)
}

func TestStepsFor_ToGoCashPutsPaidAfterReady(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusReady, DeliveryType: models.DeliveryToGo}
	payments := []models.Payment{{Method: models.PaymentCash, Status: models.PaymentPending}}

	steps := services.StepsFor(order, payments)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusRegistered,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusPaid,
		models.OrderStatusDelivered,
	}, statuses(steps))
	assert.True(t, steps[2].Active)
}

func TestStepsFor_ToGoCardSkipsOnTheWay(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusPaid, DeliveryType: models.DeliveryToGo}
	payments := []models.Payment{{Method: models.PaymentCard, Status: models.PaymentApproved}}

	steps := services.StepsFor(order, payments)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	}, statuses(steps))
	assert.True(t, steps[0].Active)
}

func TestStepsFor_DeliveredIsTerminalNotActive(t *testing.T) {
	flows := []struct {
		deliveryType models.DeliveryType
		payments     []models.Payment
	}{
		{models.DeliveryHome, []models.Payment{{Method: models.PaymentCard, Status: models.PaymentApproved}}},
		{models.DeliveryToGo, []models.Payment{{Method: models.PaymentCard, Status: models.PaymentApproved}}},
		{models.DeliveryToGo, []models.Payment{{Method: models.PaymentCash, Status: models.PaymentApproved}}},
	}

	for _, flow := range flows {
		order := &models.Order{Status: models.OrderStatusDelivered, DeliveryType: flow.deliveryType}
		steps := services.StepsFor(order, flow.payments)

		last := steps[len(steps)-1]
		assert.Equal(t, models.OrderStatusDelivered, last.Status)
		assert.True(t, last.Completed)
		for _, step := range steps {
			assert.False(t, step.Active, "no step should be active once delivered (%s)", flow.deliveryType)
		}
	}
}

func TestNextStatus(t *testing.T) {
	home := &models.Order{Status: models.OrderStatusReady, DeliveryType: models.DeliveryHome}
	next, ok := services.NextStatus(home, models.PaymentCard)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusOnTheWay, next)

	cashPickup := &models.Order{Status: models.OrderStatusReady, DeliveryType: models.DeliveryToGo}
	next, ok = services.NextStatus(cashPickup, models.PaymentCash)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, next)

	cardPickup := &models.Order{Status: models.OrderStatusReady, DeliveryType: models.DeliveryToGo}
	next, ok = services.NextStatus(cardPickup, models.PaymentCard)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusDelivered, next)

	delivered := &models.Order{Status: models.OrderStatusDelivered, DeliveryType: models.DeliveryHome}
	_, ok = services.NextStatus(delivered, models.PaymentCard)
	assert.False(t, ok)
}

func TestTrackingService_TrackLatest(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	svc := services.NewTrackingService(orderRepo, paymentRepo)

	older := &models.Order{ClientID: "client-1", Status: models.OrderStatusDelivered, DeliveryType: models.DeliveryToGo}
	assert.NoError(t, orderRepo.Create(older))
	time.Sleep(2 * time.Millisecond)
	newer := &models.Order{ClientID: "client-1", Status: models.OrderStatusPreparing, DeliveryType: models.DeliveryToGo}
	assert.NoError(t, orderRepo.Create(newer))

	tracking, err := svc.TrackLatest("client-1")
	assert.NoError(t, err)
	assert.Equal(t, newer.ID, tracking.Order.ID)
	assert.Equal(t, models.PaymentCash, tracking.Method)

	_, err = svc.TrackLatest("client-2")
	assert.Error(t, err)
	assert.True(t, services.IsValidation(err))
}
