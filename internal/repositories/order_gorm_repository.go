package repositories

import (
	"fmt"
	"time"

	"ristorante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByClient retrieves the orders of one client, newest first.
func (r *GORMOrderRepository) GetByClient(clientID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders, "client_id = ?", clientID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for client %s: %w", clientID, err)
	}
	return orders, nil
}

// Create creates a new order row. Line items are persisted separately.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus advances the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// GORMOrderLineRepository is a GORM implementation of OrderLineRepository.
type GORMOrderLineRepository struct {
	db *gorm.DB
}

// NewGORMOrderLineRepository creates a new instance of GORMOrderLineRepository.
func NewGORMOrderLineRepository(db *gorm.DB) *GORMOrderLineRepository {
	return &GORMOrderLineRepository{
		db: db,
	}
}

// CreateBatch persists all the lines of an order in one call.
func (r *GORMOrderLineRepository) CreateBatch(lines []models.OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("no order lines to create")
	}
	if err := r.db.Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to create order lines: %w", err)
	}
	return nil
}

// GetByOrder retrieves the raw lines of an order.
func (r *GORMOrderLineRepository) GetByOrder(orderID string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.db.Find(&lines, "order_id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to get lines for order %s: %w", orderID, err)
	}
	return lines, nil
}
