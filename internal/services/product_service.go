package services

import (
	"fmt"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
)

// ProductService handles business logic related to menu products.
type ProductService struct {
	repo    repositories.ProductRepository
	dayRepo repositories.ProductDayRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, dayRepo repositories.ProductDayRepository) *ProductService {
	return &ProductService{
		repo:    repo,
		dayRepo: dayRepo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Name == "" {
		return &ValidationError{Field: "name", Message: "product name is required"}
	}
	if product.Price < 0 {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if product.PrepTimeMinutes <= 0 {
		product.PrepTimeMinutes = defaultPrepTimeMinutes
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.Price < 0 {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// AssignDays adds weekdays to a product's serving schedule. Day names are
// normalized to the unaccented Spanish spelling before being stored.
func (s *ProductService) AssignDays(productID string, days []string) error {
	if _, err := s.repo.GetByID(productID); err != nil {
		return err
	}
	for _, d := range days {
		day := NormalizeWeekday(d)
		if !isWeekdayName(day) {
			return &ValidationError{Field: "day", Message: fmt.Sprintf("unknown weekday %q", d)}
		}
		if err := s.dayRepo.Assign(productID, day); err != nil {
			return err
		}
	}
	return nil
}

func isWeekdayName(day string) bool {
	for _, name := range weekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

// DaysForProduct returns the weekdays a product is served on.
func (s *ProductService) DaysForProduct(productID string) ([]string, error) {
	return s.dayRepo.DaysForProduct(productID)
}
