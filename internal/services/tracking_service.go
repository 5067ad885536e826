package services

import (
	"ristorante/internal/models"
	"ristorante/internal/repositories"
)

// TrackingStep is one entry of the rendered order progress bar.
type TrackingStep struct {
	Status    models.OrderStatus `json:"status"`
	Completed bool               `json:"completed"`
	Active    bool               `json:"active"`
}

// Canonical step lists per flow. Cash pickups collect the money at the
// counter, so PAGADO comes after LISTO in that flow rather than first.
var (
	homeDeliverySteps = []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusOnTheWay,
		models.OrderStatusDelivered,
	}
	toGoCardSteps = []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	}
	toGoCashSteps = []models.OrderStatus{
		models.OrderStatusRegistered,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusPaid,
		models.OrderStatusDelivered,
	}
)

// DetectPaymentMethod inspects the payments recorded against an order and
// returns the method driving the status flow. A card payment wins over a
// cash one; with neither, the most recent payment's method is used; with no
// payments at all, cash is assumed.
func DetectPaymentMethod(payments []models.Payment) (models.PaymentMethod, models.PaymentStatus) {
	var cash *models.Payment
	for i := range payments {
		switch payments[i].Method {
		case models.PaymentCard:
			return models.PaymentCard, payments[i].Status
		case models.PaymentCash:
			if cash == nil {
				cash = &payments[i]
			}
		}
	}
	if cash != nil {
		return models.PaymentCash, cash.Status
	}
	if len(payments) > 0 {
		last := payments[len(payments)-1]
		return last.Method, last.Status
	}
	return models.PaymentCash, models.PaymentPending
}

// StepsFor derives the progress steps for an order given its recorded
// payments. A step is completed when it precedes the current status in the
// canonical list, and active when it equals it; ENTREGADO is terminal and is
// reported completed rather than active.
func StepsFor(order *models.Order, payments []models.Payment) []TrackingStep {
	method, status := DetectPaymentMethod(payments)

	var canonical []models.OrderStatus
	switch {
	case order.DeliveryType == models.DeliveryHome:
		canonical = homeDeliverySteps
	case method == models.PaymentCard || status == models.PaymentApproved:
		canonical = toGoCardSteps
	default:
		canonical = toGoCashSteps
	}

	current := -1
	for i, s := range canonical {
		if s == order.Status {
			current = i
			break
		}
	}

	steps := make([]TrackingStep, len(canonical))
	for i, s := range canonical {
		step := TrackingStep{Status: s}
		if current >= 0 && i < current {
			step.Completed = true
		}
		if i == current {
			if s == models.OrderStatusDelivered {
				step.Completed = true
			} else {
				step.Active = true
			}
		}
		steps[i] = step
	}
	return steps
}

// NextStatus suggests the status a staff dashboard should offer next for an
// order, honoring the flow differences: cash pickups are marked PAGADO only
// at handover, home deliveries pass through EN_CAMINO.
func NextStatus(order *models.Order, method models.PaymentMethod) (models.OrderStatus, bool) {
	home := order.DeliveryType == models.DeliveryHome
	cashPickup := !home && method != models.PaymentCard

	switch order.Status {
	case models.OrderStatusRegistered:
		if cashPickup {
			return models.OrderStatusPreparing, true
		}
		return models.OrderStatusPaid, true
	case models.OrderStatusPaid:
		if cashPickup {
			// Cash pickup reaches PAGADO at the counter; handover is next.
			return models.OrderStatusDelivered, true
		}
		return models.OrderStatusPreparing, true
	case models.OrderStatusPreparing:
		return models.OrderStatusReady, true
	case models.OrderStatusReady:
		if home {
			return models.OrderStatusOnTheWay, true
		}
		if cashPickup {
			return models.OrderStatusPaid, true
		}
		return models.OrderStatusDelivered, true
	case models.OrderStatusOnTheWay:
		return models.OrderStatusDelivered, true
	default:
		return "", false
	}
}

// OrderTracking is one tracking snapshot: the order plus its derived steps.
type OrderTracking struct {
	Order    *models.Order        `json:"order"`
	Payments []models.Payment     `json:"payments"`
	Steps    []TrackingStep       `json:"steps"`
	Method   models.PaymentMethod `json:"detected_method"`
}

// TrackingService reads orders and payments and derives progress views. The
// derivation itself is pure; the service only adds the fetch.
type TrackingService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository) *TrackingService {
	return &TrackingService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// Track loads one order and derives its steps.
func (s *TrackingService) Track(orderID string) (*OrderTracking, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, remoteErr("get order", err)
	}
	payments, err := s.paymentRepo.GetByOrder(orderID)
	if err != nil {
		return nil, remoteErr("get payments", err)
	}

	method, _ := DetectPaymentMethod(payments)
	return &OrderTracking{
		Order:    order,
		Payments: payments,
		Steps:    StepsFor(order, payments),
		Method:   method,
	}, nil
}

// TrackLatest finds the client's most recent order and derives its steps.
func (s *TrackingService) TrackLatest(clientID string) (*OrderTracking, error) {
	orders, err := s.orderRepo.GetByClient(clientID)
	if err != nil {
		return nil, remoteErr("get client orders", err)
	}
	if len(orders) == 0 {
		return nil, &ValidationError{Field: "client_id", Message: "no orders for client"}
	}

	latest := orders[0]
	for _, o := range orders[1:] {
		if o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	return s.Track(latest.ID)
}
