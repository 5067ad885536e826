package services

import (
	"context"
	"log"
	"time"
)

// DefaultTrackingInterval is how often the latest-order view re-fetches.
const DefaultTrackingInterval = 10 * time.Second

// TrackingPoller re-fetches an order's tracking view on a fixed interval and
// delivers snapshots on a channel. Cancellation of the context stops the
// poller; a fetch already in flight when the consumer goes away is discarded
// rather than delivered.
type TrackingPoller struct {
	service  *TrackingService
	orderID  string
	interval time.Duration
}

// NewTrackingPoller creates a poller for one order. A non-positive interval
// falls back to DefaultTrackingInterval.
func NewTrackingPoller(service *TrackingService, orderID string, interval time.Duration) *TrackingPoller {
	if interval <= 0 {
		interval = DefaultTrackingInterval
	}
	return &TrackingPoller{
		service:  service,
		orderID:  orderID,
		interval: interval,
	}
}

// Run polls until ctx is cancelled. The returned channel carries one
// snapshot immediately and then one per interval; it is closed when the
// poller stops. Fetch errors are logged and skipped, matching the view's
// keep-last-good-state behavior.
func (p *TrackingPoller) Run(ctx context.Context) <-chan *OrderTracking {
	out := make(chan *OrderTracking)

	go func() {
		defer close(out)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.fetchAndDeliver(ctx, out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fetchAndDeliver(ctx, out)
			}
		}
	}()

	return out
}

func (p *TrackingPoller) fetchAndDeliver(ctx context.Context, out chan<- *OrderTracking) {
	snapshot, err := p.service.Track(p.orderID)
	if err != nil {
		log.Printf("tracking poll for order %s failed: %v", p.orderID, err)
		return
	}

	// Re-check cancellation after the fetch so a result that resolved after
	// the consumer left is dropped, not delivered.
	select {
	case <-ctx.Done():
	case out <- snapshot:
	}
}
