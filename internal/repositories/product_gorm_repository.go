package repositories

import (
	"fmt"
	"ristorante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	return nil
}

// GORMProductDayRepository is a GORM implementation of ProductDayRepository.
type GORMProductDayRepository struct {
	db *gorm.DB
}

// NewGORMProductDayRepository creates a new instance of GORMProductDayRepository.
func NewGORMProductDayRepository(db *gorm.DB) *GORMProductDayRepository {
	return &GORMProductDayRepository{
		db: db,
	}
}

// DaysForProduct returns the stored weekday names for a product.
func (r *GORMProductDayRepository) DaysForProduct(productID string) ([]string, error) {
	var entries []models.ProductDay
	if err := r.db.Find(&entries, "product_id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to get days for product %s: %w", productID, err)
	}
	days := make([]string, 0, len(entries))
	for _, e := range entries {
		days = append(days, e.Day)
	}
	return days, nil
}

// Assign registers a weekday for a product.
func (r *GORMProductDayRepository) Assign(productID string, day string) error {
	entry := models.ProductDay{ProductID: productID, Day: day}
	if err := r.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to assign day %s to product %s: %w", day, productID, err)
	}
	return nil
}
