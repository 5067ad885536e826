package repositories

import (
	"ristorante/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByClient(clientID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
	// Orders are never deleted; abandoned ones remain as an audit trail.
}

// OrderLineRepository defines the interface for order line data access.
// Line creation is a call separate from order creation on purpose: the two
// are issued as discrete steps by the checkout flow with no shared
// transaction.
type OrderLineRepository interface {
	CreateBatch(lines []models.OrderLine) error
	GetByOrder(orderID string) ([]models.OrderLine, error)
}
