package repositories

import (
	"fmt"
	"sync"

	"ristorante/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It backs the app when no database is configured and keeps tests hermetic.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update overwrites an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockProductDayRepository is an in-memory implementation of ProductDayRepository.
type MockProductDayRepository struct {
	days map[string][]string
	mu   sync.RWMutex
}

// NewMockProductDayRepository creates a new instance of MockProductDayRepository.
func NewMockProductDayRepository() *MockProductDayRepository {
	return &MockProductDayRepository{
		days: make(map[string][]string),
	}
}

// DaysForProduct returns the weekdays registered for a product.
func (r *MockProductDayRepository) DaysForProduct(productID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	days := make([]string, len(r.days[productID]))
	copy(days, r.days[productID])
	return days, nil
}

// Assign registers a weekday for a product.
func (r *MockProductDayRepository) Assign(productID string, day string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.days[productID] = append(r.days[productID], day)
	return nil
}
