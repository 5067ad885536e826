package handlers

import (
	"errors"
	"log"
	"sync"

	"ristorante/internal/models"
	"ristorante/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CheckoutHandler exposes the checkout state machines over HTTP. Checkouts
// in progress live in memory keyed by a session ID the client carries
// between steps; abandoning a session costs nothing because remote records
// are only created at the confirm and pay steps.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	carts    *services.CartService

	mu       sync.RWMutex
	sessions map[string]*services.Checkout
	counters map[string]*services.CounterCheckout
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService, carts *services.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		sessions: make(map[string]*services.Checkout),
		counters: make(map[string]*services.CounterCheckout),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	co := router.Group("/checkout")
	co.Post("/", h.HandleBegin)
	co.Get("/:id", h.HandleGet)
	co.Post("/:id/entrega", h.HandleSelectDelivery)
	co.Post("/:id/contacto", h.HandleConfirmContact)
	co.Post("/:id/confirmar", h.HandleConfirmOrder)
	co.Post("/:id/pagar/efectivo", h.HandlePayCash)
	co.Post("/:id/pagar/tarjeta", h.HandlePayCard)
	co.Post("/:id/atras", h.HandleBack)

	counter := router.Group("/mostrador")
	counter.Post("/", h.HandleBeginCounter)
	counter.Get("/:id", h.HandleGetCounter)
	counter.Post("/:id/revisar", h.HandleReviewCounter)
	counter.Post("/:id/cobrar", h.HandleAdvanceCounter)
	counter.Post("/:id/confirmar", h.HandleConfirmCounter)
	counter.Post("/:id/atras", h.HandleBackCounter)
}

// BeginCheckoutRequest represents the request body for opening a checkout.
type BeginCheckoutRequest struct {
	ClientID string `json:"client_id"`
}

// HandleBegin opens a client checkout over the client's current cart.
func (h *CheckoutHandler) HandleBegin(c *fiber.Ctx) error {
	var req BeginCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.Get(req.ClientID)
	if err != nil {
		log.Printf("Error loading cart for checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}

	co, err := h.checkout.Begin(req.ClientID, cart)
	if err != nil {
		return checkoutError(c, "Could not start checkout", err)
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.sessions[id] = co
	h.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkout_id": id,
		"checkout":    co,
	})
}

// HandleGet returns the current state of a checkout session.
func (h *CheckoutHandler) HandleGet(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(co)
}

// SelectDeliveryRequest represents the request body for the delivery step.
type SelectDeliveryRequest struct {
	DeliveryType models.DeliveryType `json:"delivery_type"`
}

// HandleSelectDelivery records the delivery type on a checkout.
func (h *CheckoutHandler) HandleSelectDelivery(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var req SelectDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.checkout.SelectDeliveryType(co, req.DeliveryType); err != nil {
		return checkoutError(c, "Could not select delivery type", err)
	}
	return c.JSON(co)
}

// HandleConfirmContact validates contact data and, for home delivery,
// resolves the postal code.
func (h *CheckoutHandler) HandleConfirmContact(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.checkout.ConfirmContact(c.Context(), co, addr); err != nil {
		return checkoutError(c, "Could not confirm contact data", err)
	}
	return c.JSON(co)
}

// HandleConfirmOrder creates the order and its lines.
func (h *CheckoutHandler) HandleConfirmOrder(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.ConfirmOrder(c.Context(), co); err != nil {
		return checkoutError(c, "Could not confirm order", err)
	}
	return c.JSON(co)
}

// HandlePayCash records a pending cash payment and completes the checkout.
func (h *CheckoutHandler) HandlePayCash(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.PayCash(c.Context(), co); err != nil {
		return checkoutError(c, "Could not register cash payment", err)
	}
	h.clearCartAfterDone(co)
	return c.JSON(co)
}

// PayCardRequest represents the request body for the card payment step.
type PayCardRequest struct {
	ChargeRef string `json:"charge_ref"`
}

// HandlePayCard reacts to a confirmed card charge.
func (h *CheckoutHandler) HandlePayCard(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var req PayCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.checkout.PayCard(c.Context(), co, req.ChargeRef); err != nil {
		return checkoutError(c, "Could not register card payment", err)
	}
	h.clearCartAfterDone(co)
	return c.JSON(co)
}

// HandleBack moves a checkout one step backwards.
func (h *CheckoutHandler) HandleBack(c *fiber.Ctx) error {
	co, ok := h.session(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.Back(co); err != nil {
		return checkoutError(c, "Could not go back", err)
	}
	return c.JSON(co)
}

// BeginCounterRequest represents the request body for opening a counter sale.
type BeginCounterRequest struct {
	EmployeeID string `json:"employee_id"`
	OwnerID    string `json:"owner_id"`
}

// HandleBeginCounter opens a cashier checkout over a till cart.
func (h *CheckoutHandler) HandleBeginCounter(c *fiber.Ctx) error {
	var req BeginCounterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.Get(req.OwnerID)
	if err != nil {
		log.Printf("Error loading counter cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}

	co, err := h.checkout.BeginCounter(req.EmployeeID, cart)
	if err != nil {
		return checkoutError(c, "Could not start counter sale", err)
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.counters[id] = co
	h.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkout_id": id,
		"checkout":    co,
	})
}

// HandleGetCounter returns the current state of a counter checkout.
func (h *CheckoutHandler) HandleGetCounter(c *fiber.Ctx) error {
	co, ok := h.counter(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(co)
}

// HandleReviewCounter advances a counter sale to the review step.
func (h *CheckoutHandler) HandleReviewCounter(c *fiber.Ctx) error {
	co, ok := h.counter(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.Review(co); err != nil {
		return checkoutError(c, "Could not review counter sale", err)
	}
	return c.JSON(co)
}

// HandleAdvanceCounter moves a counter sale to the payment step.
func (h *CheckoutHandler) HandleAdvanceCounter(c *fiber.Ctx) error {
	co, ok := h.counter(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.AdvanceToPayment(co); err != nil {
		return checkoutError(c, "Could not open payment step", err)
	}
	return c.JSON(co)
}

// ConfirmCounterRequest represents the request body for finishing a counter
// sale.
type ConfirmCounterRequest struct {
	Method models.PaymentMethod `json:"method"`
}

// HandleConfirmCounter creates the paid order, payment and sale records and
// returns the printable receipt.
func (h *CheckoutHandler) HandleConfirmCounter(c *fiber.Ctx) error {
	co, ok := h.counter(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var req ConfirmCounterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.checkout.ConfirmCounterPayment(c.Context(), co, req.Method); err != nil {
		return checkoutError(c, "Could not confirm counter payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkout": co,
		"receipt":  co.Receipt,
	})
}

// HandleBackCounter moves a counter sale one step backwards.
func (h *CheckoutHandler) HandleBackCounter(c *fiber.Ctx) error {
	co, ok := h.counter(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if err := h.checkout.BackCounter(co); err != nil {
		return checkoutError(c, "Could not go back", err)
	}
	return c.JSON(co)
}

func (h *CheckoutHandler) session(id string) (*services.Checkout, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	co, ok := h.sessions[id]
	return co, ok
}

func (h *CheckoutHandler) counter(id string) (*services.CounterCheckout, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	co, ok := h.counters[id]
	return co, ok
}

// clearCartAfterDone empties the client's stored cart once the checkout has
// completed. A failure here is logged only; the order is already placed.
func (h *CheckoutHandler) clearCartAfterDone(co *services.Checkout) {
	if co.State != services.StateDone {
		return
	}
	if _, err := h.carts.Clear(co.ClientID); err != nil {
		log.Printf("Warning: failed to clear cart for %s after checkout: %v", co.ClientID, err)
	}
}

func sessionNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Checkout session not found",
	})
}

// checkoutError maps service errors to HTTP statuses: validation and state
// errors are the caller's fault, partial failures report what did complete,
// everything else is an upstream failure.
func checkoutError(c *fiber.Ctx, msg string, err error) error {
	log.Printf("%s: %v", msg, err)

	var partial *services.PartialFailureError
	if errors.As(err, &partial) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":   msg,
			"error":     err.Error(),
			"completed": partial.Completed,
			"failed":    partial.Failed,
		})
	}
	if services.IsValidation(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": msg,
			"error":   err.Error(),
		})
	}
	var remote *services.RemoteError
	if errors.As(err, &remote) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": msg,
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": msg,
		"error":   err.Error(),
	})
}
