package handlers

import (
	"fmt"
	"log"

	"ristorante/internal/models"
	"ristorante/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for per-owner carts.
type CartHandler struct {
	carts    *services.CartService
	products *services.ProductService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, products *services.ProductService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carrito")
	cartRoutes.Get("/:ownerID", h.HandleGetCart)
	cartRoutes.Post("/:ownerID/items", h.HandleAddItem)
	cartRoutes.Put("/:ownerID/items/:productID", h.HandleSetQuantity)
	cartRoutes.Delete("/:ownerID/items/:productID", h.HandleRemoveItem)
	cartRoutes.Delete("/:ownerID", h.HandleClearCart)
	cartRoutes.Put("/:ownerID/entrega", h.HandleSetDeliveryType)
	cartRoutes.Put("/:ownerID/direccion", h.HandleSetAddress)
}

// HandleGetCart returns the owner's cart, empty if they have none yet.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.carts.Get(c.Params("ownerID"))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// AddItemRequest represents the request body for adding a product to a cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddItem adds one unit of a product to the cart, merging with an
// existing line for the same product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ProductID is required.",
		})
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		log.Printf("Error loading product %s for cart: %v", req.ProductID, err)
		if err.Error() == fmt.Sprintf("product with ID %s not found", req.ProductID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", req.ProductID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.AddItem(c.Params("ownerID"), *product)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// SetQuantityRequest represents the request body for changing a line quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity sets the quantity of a cart line. Zero or negative
// removes the line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.SetQuantity(c.Params("ownerID"), c.Params("productID"), req.Quantity)
	if err != nil {
		log.Printf("Error setting quantity: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes a product line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.carts.RemoveItem(c.Params("ownerID"), c.Params("productID"))
	if err != nil {
		log.Printf("Error removing item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleClearCart empties the cart while keeping the customer data.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.carts.Clear(c.Params("ownerID"))
	if err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// SetDeliveryTypeRequest represents the request body for choosing delivery.
type SetDeliveryTypeRequest struct {
	DeliveryType models.DeliveryType `json:"delivery_type"`
}

// HandleSetDeliveryType records the delivery type on the cart.
func (h *CartHandler) HandleSetDeliveryType(c *fiber.Ctx) error {
	var req SetDeliveryTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.SetDeliveryType(c.Params("ownerID"), req.DeliveryType)
	if err != nil {
		log.Printf("Error setting delivery type: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not set delivery type",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleSetAddress merges address fields into the cart.
func (h *CartHandler) HandleSetAddress(c *fiber.Ctx) error {
	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.SetAddress(c.Params("ownerID"), addr)
	if err != nil {
		log.Printf("Error setting address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not set address",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}
