package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"ristorante/internal/models"

	"gorm.io/gorm"
)

// CartRecord is the durable row backing one owner's cart. The cart itself is
// stored as a JSON snapshot, the way the cashier UI kept it in local storage.
type CartRecord struct {
	OwnerID   string    `gorm:"primaryKey;type:varchar(100)"`
	Payload   []byte    `gorm:"type:bytes"`
	UpdatedAt time.Time
}

// GORMCartStore is a durable CartStore used by the cashier terminals, whose
// carts must survive a page reload mid-sale.
type GORMCartStore struct {
	db *gorm.DB
}

// NewGORMCartStore creates a new instance of GORMCartStore.
func NewGORMCartStore(db *gorm.DB) *GORMCartStore {
	return &GORMCartStore{
		db: db,
	}
}

// Load returns the stored cart for an owner, or a fresh empty cart.
func (s *GORMCartStore) Load(ownerID string) (*models.Cart, error) {
	var record CartRecord
	if err := s.db.First(&record, "owner_id = ?", ownerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart for %s: %w", ownerID, err)
	}

	var cart models.Cart
	if err := json.Unmarshal(record.Payload, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart for %s: %w", ownerID, err)
	}
	return &cart, nil
}

// Save stores a snapshot of the cart.
func (s *GORMCartStore) Save(ownerID string, cart *models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart for %s: %w", ownerID, err)
	}

	record := CartRecord{OwnerID: ownerID, Payload: payload, UpdatedAt: time.Now()}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save cart for %s: %w", ownerID, err)
	}
	return nil
}
