package handlers

import (
	"fmt"
	"log"
	"strings"

	"ristorante/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for order tracking.
type TrackingHandler struct {
	service *services.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(service *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		service: service,
	}
}

// RegisterRoutes registers the tracking routes with the Fiber app.
func (h *TrackingHandler) RegisterRoutes(router fiber.Router) {
	trackingRoutes := router.Group("/seguimiento")
	trackingRoutes.Get("/pedido/:id", h.HandleTrackOrder)
	trackingRoutes.Get("/pedido/:id/siguiente", h.HandleNextStatus)
	trackingRoutes.Get("/cliente/:clientID", h.HandleTrackLatest)
}

// HandleTrackOrder returns the tracking snapshot for one order.
func (h *TrackingHandler) HandleTrackOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	tracking, err := h.service.Track(orderID)
	if err != nil {
		log.Printf("Error tracking order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tracking",
			"error":   err.Error(),
		})
	}
	return c.JSON(tracking)
}

// HandleNextStatus suggests the next status a staff member would move the
// order to, if any.
func (h *TrackingHandler) HandleNextStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	tracking, err := h.service.Track(orderID)
	if err != nil {
		log.Printf("Error tracking order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tracking",
			"error":   err.Error(),
		})
	}

	next, ok := services.NextStatus(tracking.Order, tracking.Method)
	return c.JSON(fiber.Map{
		"order_id":    orderID,
		"status":      tracking.Order.Status,
		"next_status": next,
		"has_next":    ok,
	})
}

// HandleTrackLatest returns the tracking snapshot for a client's most
// recent order.
func (h *TrackingHandler) HandleTrackLatest(c *fiber.Ctx) error {
	clientID := c.Params("clientID")
	tracking, err := h.service.TrackLatest(clientID)
	if err != nil {
		log.Printf("Error tracking latest order for client %s: %v", clientID, err)
		if strings.Contains(err.Error(), "no orders") || strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("No orders found for client %s", clientID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tracking",
			"error":   err.Error(),
		})
	}
	return c.JSON(tracking)
}
