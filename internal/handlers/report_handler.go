package handlers

import (
	"log"

	"ristorante/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for admin reports and counter sales.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/reportes/ingresos", h.HandleIncome)

	salesRoutes := router.Group("/ventas")
	salesRoutes.Get("/", h.HandleGetSales)
	salesRoutes.Get("/empleado/:employeeID", h.HandleGetSalesByEmployee)
}

// HandleIncome returns the aggregated income summary.
func (h *ReportHandler) HandleIncome(c *fiber.Ctx) error {
	summary, err := h.service.Income()
	if err != nil {
		log.Printf("Error building income report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build income report",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleGetSales returns every counter sale.
func (h *ReportHandler) HandleGetSales(c *fiber.Ctx) error {
	sales, err := h.service.AllSales()
	if err != nil {
		log.Printf("Error getting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sales",
			"error":   err.Error(),
		})
	}
	return c.JSON(sales)
}

// HandleGetSalesByEmployee returns the counter sales of one employee.
func (h *ReportHandler) HandleGetSalesByEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("employeeID")
	sales, err := h.service.SalesByEmployee(employeeID)
	if err != nil {
		log.Printf("Error getting sales for employee %s: %v", employeeID, err)
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid employee",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sales",
			"error":   err.Error(),
		})
	}
	return c.JSON(sales)
}
