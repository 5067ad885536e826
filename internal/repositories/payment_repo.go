package repositories

import (
	"ristorante/internal/models"
)

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByOrder(orderID string) ([]models.Payment, error)
	GetAll() ([]models.Payment, error)
}

// SaleRepository defines the interface for counter-sale records.
type SaleRepository interface {
	Create(sale *models.Sale) error
	GetAll() ([]models.Sale, error)
	GetByEmployee(employeeID string) ([]models.Sale, error)
	GetByOrder(orderID string) (*models.Sale, error)
}
