package repositories

import (
	"sync"

	"ristorante/internal/models"
)

// CartStore is the persistence port for in-progress carts, keyed by the
// owning session (a client id or a cashier terminal id). Save is called
// synchronously after every cart mutation.
type CartStore interface {
	Load(ownerID string) (*models.Cart, error)
	Save(ownerID string, cart *models.Cart) error
}

// MemoryCartStore keeps carts in memory. It backs client sessions, whose
// carts do not survive the session, and all tests.
type MemoryCartStore struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartStore creates a new instance of MemoryCartStore.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]models.Cart),
	}
}

// Load returns the stored cart for an owner, or a fresh empty cart.
func (s *MemoryCartStore) Load(ownerID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[ownerID]
	if !ok {
		return &models.Cart{}, nil
	}
	copied := cart
	copied.Lines = make([]models.CartLine, len(cart.Lines))
	copy(copied.Lines, cart.Lines)
	return &copied, nil
}

// Save stores a snapshot of the cart.
func (s *MemoryCartStore) Save(ownerID string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *cart
	copied.Lines = make([]models.CartLine, len(cart.Lines))
	copy(copied.Lines, cart.Lines)
	s.carts[ownerID] = copied
	return nil
}
