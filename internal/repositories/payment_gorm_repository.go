package repositories

import (
	"fmt"
	"time"

	"ristorante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// Create records a payment.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByOrder retrieves the payments recorded against an order.
func (r *GORMPaymentRepository) GetByOrder(orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Find(&payments, "order_id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments for order %s: %w", orderID, err)
	}
	return payments, nil
}

// GetAll retrieves every payment.
func (r *GORMPaymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all payments: %w", err)
	}
	return payments, nil
}

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// Create records a counter sale.
func (r *GORMSaleRepository) Create(sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now()
	}
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// GetAll retrieves every sale.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	return sales, nil
}

// GetByEmployee retrieves the sales rung up by one employee.
func (r *GORMSaleRepository) GetByEmployee(employeeID string) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Find(&sales, "employee_id = ?", employeeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get sales for employee %s: %w", employeeID, err)
	}
	return sales, nil
}

// GetByOrder retrieves the sale linked to an order.
func (r *GORMSaleRepository) GetByOrder(orderID string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.First(&sale, "order_id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sale for order %s not found", orderID)
		}
		return nil, fmt.Errorf("failed to get sale for order %s: %w", orderID, err)
	}
	return &sale, nil
}
