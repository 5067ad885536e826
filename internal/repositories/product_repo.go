package repositories

import (
	"ristorante/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

// ProductDayRepository defines the interface for the product/weekday lookup.
type ProductDayRepository interface {
	// DaysForProduct returns the weekday names the product is offered on,
	// as stored (possibly accented).
	DaysForProduct(productID string) ([]string, error)
	Assign(productID string, day string) error
}
