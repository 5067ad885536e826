package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/pkg/geocoding"
	"ristorante/pkg/rabbitmq"
)

// CheckoutState is a step of the checkout flow.
type CheckoutState string

const (
	StateCart    CheckoutState = "CART"
	StateContact CheckoutState = "CONTACT_OR_ADDRESS"
	StateReview  CheckoutState = "REVIEW"
	StatePayment CheckoutState = "PAYMENT"
	StateDone    CheckoutState = "DONE"
)

// restaurantAddress is snapshotted into pickup orders; only the customer's
// phone is taken from their input.
var restaurantAddress = models.Address{
	Street:         "Zaragoza",
	ExteriorNumber: "6",
	Neighborhood:   "Centro",
	City:           "Chilpancingo",
	State:          "Guerrero",
	PostalCode:     "39020",
	DeliveryNotes:  "Para recoger en el restaurante",
}

// PostalCodeResolver is the geocoding collaborator consumed by the contact
// step of home deliveries.
type PostalCodeResolver interface {
	Resolve(ctx context.Context, postalCode string) (*geocoding.PostalCodeInfo, error)
}

// EventPublisher abstracts the message broker. A nil publisher disables
// events without disabling checkout.
type EventPublisher interface {
	Publish(routingKey string, payload map[string]interface{}) error
}

// Checkout is one client checkout in progress. It moves through
// CART -> CONTACT_OR_ADDRESS -> REVIEW -> PAYMENT -> DONE; Back moves the
// cursor without network effects and never past DONE.
type Checkout struct {
	State    CheckoutState
	ClientID string
	Cart     models.Cart
	Order    *models.Order
	Payment  *models.Payment
}

// CounterCheckout is the cashier variant: CART -> REVIEW -> PAYMENT -> DONE.
// Counter sales are assumed already paid, so the order is created directly
// as PAGADO at payment confirmation.
type CounterCheckout struct {
	State      CheckoutState
	EmployeeID string
	Cart       models.Cart
	Order      *models.Order
	Payment    *models.Payment
	Sale       *models.Sale
	Receipt    *Receipt
}

// Receipt carries the data the counter prints after a sale.
type Receipt struct {
	OrderID    string               `json:"order_id"`
	EmployeeID string               `json:"employee_id"`
	Lines      []models.CartLine    `json:"lines"`
	Method     models.PaymentMethod `json:"method"`
	Reference  string               `json:"reference"`
	Total      float64              `json:"total"`
}

// CheckoutService drives both checkout state machines. Each remote effect is
// a discrete call; there is no cross-call transaction, and failures after the
// first call surface as PartialFailureError without compensation.
type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	lineRepo    repositories.OrderLineRepository
	paymentRepo repositories.PaymentRepository
	saleRepo    repositories.SaleRepository
	geo         PostalCodeResolver
	events      EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	lineRepo repositories.OrderLineRepository,
	paymentRepo repositories.PaymentRepository,
	saleRepo repositories.SaleRepository,
	geo PostalCodeResolver,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		geo:         geo,
		events:      events,
	}
}

// Begin opens a client checkout over a snapshot of the cart.
func (s *CheckoutService) Begin(clientID string, cart *models.Cart) (*Checkout, error) {
	if clientID == "" {
		return nil, &ValidationError{Field: "client_id", Message: "client id is required"}
	}
	if len(cart.Lines) == 0 {
		return nil, &ValidationError{Field: "cart", Message: "cart is empty"}
	}
	return &Checkout{
		State:    StateCart,
		ClientID: clientID,
		Cart:     *cart,
	}, nil
}

// SelectDeliveryType records the delivery type and advances to the contact
// step. Clients choose between pickup and home delivery; counter pickup is
// reserved for the cashier flow.
func (s *CheckoutService) SelectDeliveryType(co *Checkout, t models.DeliveryType) error {
	if co.State != StateCart {
		return stateErr(co.State, StateCart)
	}
	if t != models.DeliveryToGo && t != models.DeliveryHome {
		return &ValidationError{Field: "delivery_type", Message: fmt.Sprintf("unsupported delivery type %q", t)}
	}
	co.Cart.DeliveryType = t
	co.State = StateContact
	return nil
}

// ConfirmContact validates the phone (and, for home delivery, the address
// and serviceable postal code) and advances to review. Validation failures
// never issue remote calls.
func (s *CheckoutService) ConfirmContact(ctx context.Context, co *Checkout, addr models.Address) error {
	if co.State != StateContact {
		return stateErr(co.State, StateContact)
	}
	if err := ValidateCheckoutAddress(co.Cart.DeliveryType, addr); err != nil {
		return err
	}

	if co.Cart.DeliveryType == models.DeliveryHome {
		info, err := s.geo.Resolve(ctx, addr.PostalCode)
		switch {
		case err == nil:
			addr.City = info.City
			addr.State = info.State
		case errors.Is(err, geocoding.ErrOutsideServiceArea):
			return &ValidationError{Field: "postal_code", Message: err.Error()}
		default:
			// Lookup outage: the code already passed the range gate, so keep
			// going with the known municipality rather than blocking the sale.
			log.Printf("postal code lookup for %s failed, using defaults: %v", addr.PostalCode, err)
			addr.City = "Chilpancingo de los Bravo"
			addr.State = "Guerrero"
		}
		co.Cart.Address = addr
	} else {
		pickup := restaurantAddress
		pickup.Phone = addr.Phone
		co.Cart.Address = pickup
	}

	co.State = StateReview
	return nil
}

// ConfirmOrder creates the order (REGISTRADO) and then its lines as two
// discrete calls. On any failure the checkout stays in REVIEW; an order row
// already created is left behind server-side as an audit trail.
func (s *CheckoutService) ConfirmOrder(ctx context.Context, co *Checkout) error {
	if co.State != StateReview {
		return stateErr(co.State, StateReview)
	}

	order := &models.Order{
		ClientID:     co.ClientID,
		Status:       models.OrderStatusRegistered,
		DeliveryType: co.Cart.DeliveryType,
		Online:       true,
		Address:      co.Cart.Address,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return remoteErr("create order", err)
	}

	if co.Cart.DeliveryType == models.DeliveryToGo {
		order.Address.DeliveryNotes = fmt.Sprintf("Cliente en el restaurante con el identificador: %s", order.ID)
	} else {
		order.Address.DeliveryNotes = fmt.Sprintf("Entrega a domicilio - %s %s, %s",
			order.Address.Street, order.Address.ExteriorNumber, order.Address.Neighborhood)
	}

	lines := make([]models.OrderLine, 0, len(co.Cart.Lines))
	for _, l := range co.Cart.Lines {
		lines = append(lines, models.OrderLine{
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	if err := s.lineRepo.CreateBatch(lines); err != nil {
		return &PartialFailureError{
			Completed: fmt.Sprintf("order %s created as %s", order.ID, order.Status),
			Failed:    "order line creation",
			Cause:     err,
		}
	}

	s.publish(rabbitmq.KeyOrderCreated, map[string]interface{}{
		"orderID":      order.ID,
		"clientID":     order.ClientID,
		"status":       order.Status,
		"deliveryType": order.DeliveryType,
		"total":        co.Cart.Total,
	})

	co.Order = order
	co.State = StatePayment
	return nil
}

// PayCash records a pending cash payment for the raw subtotal and completes
// the checkout. The order stays REGISTRADO until staff collect the cash at
// pickup.
func (s *CheckoutService) PayCash(ctx context.Context, co *Checkout) error {
	if co.State != StatePayment {
		return stateErr(co.State, StatePayment)
	}
	if co.Cart.DeliveryType == models.DeliveryHome {
		return &ValidationError{Field: "method", Message: "cash is not available for home delivery"}
	}

	payment := &models.Payment{
		OrderID:   co.Order.ID,
		Method:    models.PaymentCash,
		Status:    models.PaymentPending,
		Reference: GeneratePaymentReference(models.PaymentCash),
		Amount:    co.Cart.Total,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return remoteErr("create payment", err)
	}

	s.publish(rabbitmq.KeyPaymentSaved, paymentEvent(payment))

	co.Payment = payment
	co.State = StateDone
	return nil
}

// PayCard reacts to a confirmed card charge: it marks the order PAGADO and
// then records the approved payment (subtotal plus surcharge) as two
// discrete calls. If the second fails the order stays PAGADO with no
// payment row, surfaced as a PartialFailureError.
func (s *CheckoutService) PayCard(ctx context.Context, co *Checkout, chargeRef string) error {
	if co.State != StatePayment {
		return stateErr(co.State, StatePayment)
	}
	if chargeRef == "" {
		return &ValidationError{Field: "charge_ref", Message: "confirmed charge reference is required"}
	}

	if err := s.orderRepo.UpdateStatus(co.Order.ID, models.OrderStatusPaid); err != nil {
		return remoteErr("update order status", err)
	}
	co.Order.Status = models.OrderStatusPaid // optimistic, after confirmed response

	s.publish(rabbitmq.KeyStatusUpdated, map[string]interface{}{
		"orderID": co.Order.ID,
		"status":  co.Order.Status,
	})

	payment := &models.Payment{
		OrderID:   co.Order.ID,
		Method:    models.PaymentCard,
		Status:    models.PaymentApproved,
		Reference: chargeRef,
		Amount:    TotalWithSurcharge(co.Cart.Total),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return &PartialFailureError{
			Completed: fmt.Sprintf("order %s marked %s", co.Order.ID, models.OrderStatusPaid),
			Failed:    "payment record creation",
			Cause:     err,
		}
	}

	s.publish(rabbitmq.KeyPaymentSaved, paymentEvent(payment))

	co.Payment = payment
	co.State = StateDone
	return nil
}

// Back moves one step backwards. It never issues network calls and never
// rolls back records already created server-side; leaving DONE is refused.
func (s *CheckoutService) Back(co *Checkout) error {
	switch co.State {
	case StateContact:
		co.State = StateCart
	case StateReview:
		co.State = StateContact
	case StatePayment:
		co.State = StateReview
	case StateDone:
		return &ValidationError{Field: "state", Message: "checkout is complete"}
	default:
		return &ValidationError{Field: "state", Message: "already at the first step"}
	}
	return nil
}

// BeginCounter opens a cashier checkout over a snapshot of the cart.
func (s *CheckoutService) BeginCounter(employeeID string, cart *models.Cart) (*CounterCheckout, error) {
	if employeeID == "" {
		return nil, &ValidationError{Field: "employee_id", Message: "employee id is required"}
	}
	if len(cart.Lines) == 0 {
		return nil, &ValidationError{Field: "cart", Message: "cart is empty"}
	}
	return &CounterCheckout{
		State:      StateCart,
		EmployeeID: employeeID,
		Cart:       *cart,
	}, nil
}

// Review advances the counter checkout to the review step.
func (s *CheckoutService) Review(co *CounterCheckout) error {
	if co.State != StateCart {
		return stateErr(co.State, StateCart)
	}
	co.State = StateReview
	return nil
}

// AdvanceToPayment moves the reviewed counter order to the payment step.
func (s *CheckoutService) AdvanceToPayment(co *CounterCheckout) error {
	if co.State != StateReview {
		return stateErr(co.State, StateReview)
	}
	co.State = StatePayment
	return nil
}

// ConfirmCounterPayment creates the counter order directly as PAGADO with an
// approved payment and the linked sale record. Counter sales have already
// been paid at the till, so there is no deferred payment step; this is a
// deliberate divergence from the client flow.
func (s *CheckoutService) ConfirmCounterPayment(ctx context.Context, co *CounterCheckout, method models.PaymentMethod) error {
	if co.State != StatePayment {
		return stateErr(co.State, StatePayment)
	}
	switch method {
	case models.PaymentCash, models.PaymentCard, models.PaymentWallet, models.PaymentTransfer:
	default:
		return &ValidationError{Field: "method", Message: fmt.Sprintf("unsupported payment method %q", method)}
	}

	clientID := co.Cart.Customer.ClientID
	if clientID == "" {
		clientID = "1" // walk-in counter customer
	}

	order := &models.Order{
		ClientID:     clientID,
		Status:       models.OrderStatusPaid,
		DeliveryType: models.DeliveryCounterPickup,
		Online:       false,
		Address:      restaurantAddress,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return remoteErr("create order", err)
	}

	lines := make([]models.OrderLine, 0, len(co.Cart.Lines))
	for _, l := range co.Cart.Lines {
		lines = append(lines, models.OrderLine{
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	if err := s.lineRepo.CreateBatch(lines); err != nil {
		return &PartialFailureError{
			Completed: fmt.Sprintf("order %s created as %s", order.ID, order.Status),
			Failed:    "order line creation",
			Cause:     err,
		}
	}

	payment := &models.Payment{
		OrderID:   order.ID,
		Method:    method,
		Status:    models.PaymentApproved,
		Reference: GeneratePaymentReference(method),
		Amount:    co.Cart.Total,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return &PartialFailureError{
			Completed: fmt.Sprintf("order %s created as %s with lines", order.ID, order.Status),
			Failed:    "payment record creation",
			Cause:     err,
		}
	}

	sale := &models.Sale{
		OrderID:    order.ID,
		EmployeeID: co.EmployeeID,
		Method:     method,
		Amount:     payment.Amount,
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return &PartialFailureError{
			Completed: fmt.Sprintf("order %s paid via %s", order.ID, method),
			Failed:    "sale record creation",
			Cause:     err,
		}
	}

	s.publish(rabbitmq.KeyOrderCreated, map[string]interface{}{
		"orderID":      order.ID,
		"clientID":     order.ClientID,
		"status":       order.Status,
		"deliveryType": order.DeliveryType,
		"total":        payment.Amount,
	})
	s.publish(rabbitmq.KeyPaymentSaved, paymentEvent(payment))

	co.Order = order
	co.Payment = payment
	co.Sale = sale
	co.Receipt = &Receipt{
		OrderID:    order.ID,
		EmployeeID: co.EmployeeID,
		Lines:      co.Cart.Lines,
		Method:     method,
		Reference:  payment.Reference,
		Total:      payment.Amount,
	}
	co.State = StateDone
	return nil
}

// BackCounter moves the counter checkout one step backwards.
func (s *CheckoutService) BackCounter(co *CounterCheckout) error {
	switch co.State {
	case StateReview:
		co.State = StateCart
	case StatePayment:
		co.State = StateReview
	case StateDone:
		return &ValidationError{Field: "state", Message: "checkout is complete"}
	default:
		return &ValidationError{Field: "state", Message: "already at the first step"}
	}
	return nil
}

func (s *CheckoutService) publish(key string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(key, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", key, err)
	}
}

func paymentEvent(p *models.Payment) map[string]interface{} {
	return map[string]interface{}{
		"paymentID": p.ID,
		"orderID":   p.OrderID,
		"method":    p.Method,
		"status":    p.Status,
		"amount":    p.Amount,
	}
}

func stateErr(got, want CheckoutState) error {
	return &ValidationError{
		Field:   "state",
		Message: fmt.Sprintf("operation requires state %s, checkout is in %s", want, got),
	}
}
