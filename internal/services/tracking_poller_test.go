package services_test

import (
	"context"
	"testing"
	"time"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestTrackingPoller_DeliversAndStopsOnCancel(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	svc := services.NewTrackingService(orderRepo, paymentRepo)

	order := &models.Order{ClientID: "client-1", Status: models.OrderStatusPreparing, DeliveryType: models.DeliveryToGo}
	assert.NoError(t, orderRepo.Create(order))

	ctx, cancel := context.WithCancel(context.Background())
	poller := services.NewTrackingPoller(svc, order.ID, 5*time.Millisecond)
	out := poller.Run(ctx)

	// The first snapshot arrives without waiting for a tick.
	select {
	case snapshot := <-out:
		assert.Equal(t, order.ID, snapshot.Order.ID)
		assert.Equal(t, models.OrderStatusPreparing, snapshot.Order.Status)
	case <-time.After(time.Second):
		t.Fatal("no snapshot before timeout")
	}

	// A later snapshot reflects a status change made in between.
	assert.NoError(t, orderRepo.UpdateStatus(order.ID, models.OrderStatusReady))
	deadline := time.After(time.Second)
	for {
		var snapshot *services.OrderTracking
		select {
		case snapshot = <-out:
		case <-deadline:
			t.Fatal("no updated snapshot before timeout")
		}
		if snapshot.Order.Status == models.OrderStatusReady {
			break
		}
	}

	cancel()
	// The channel closes once the poller notices the cancellation.
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestTrackingPoller_NonPositiveIntervalUsesDefault(t *testing.T) {
	svc := services.NewTrackingService(repositories.NewMockOrderRepository(), repositories.NewMockPaymentRepository())
	poller := services.NewTrackingPoller(svc, "missing", 0)

	ctx, cancel := context.WithCancel(context.Background())
	out := poller.Run(ctx)

	// The order does not exist, so no snapshot is ever delivered; the
	// poller still shuts down cleanly.
	cancel()
	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
