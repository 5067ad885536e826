package repositories

import (
	"fmt"
	"sync"
	"time"

	"ristorante/internal/models"

	"github.com/google/uuid"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
type MockPaymentRepository struct {
	payments []models.Payment
	mu       sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

// Create records a payment.
func (r *MockPaymentRepository) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

// GetByOrder returns the payments recorded against an order.
func (r *MockPaymentRepository) GetByOrder(orderID string) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			result = append(result, p)
		}
	}
	return result, nil
}

// GetAll returns every payment.
func (r *MockPaymentRepository) GetAll() ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Payment, len(r.payments))
	copy(result, r.payments)
	return result, nil
}

// MockSaleRepository is an in-memory implementation of SaleRepository.
type MockSaleRepository struct {
	sales []models.Sale
	mu    sync.RWMutex
}

// NewMockSaleRepository creates a new instance of MockSaleRepository.
func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{}
}

// Create records a counter sale.
func (r *MockSaleRepository) Create(sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now()
	}
	r.sales = append(r.sales, *sale)
	return nil
}

// GetAll returns every sale.
func (r *MockSaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Sale, len(r.sales))
	copy(result, r.sales)
	return result, nil
}

// GetByEmployee returns the sales rung up by one employee.
func (r *MockSaleRepository) GetByEmployee(employeeID string) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Sale
	for _, s := range r.sales {
		if s.EmployeeID == employeeID {
			result = append(result, s)
		}
	}
	return result, nil
}

// GetByOrder returns the sale linked to an order.
func (r *MockSaleRepository) GetByOrder(orderID string) (*models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sales {
		if s.OrderID == orderID {
			sale := s
			return &sale, nil
		}
	}
	return nil, fmt.Errorf("sale for order %s not found", orderID)
}
