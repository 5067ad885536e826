package services

import (
	"fmt"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
)

// Lines with no usable prep time fall back to this many minutes.
const defaultPrepTimeMinutes = 15

// CartService owns all cart mutations. Every mutation recomputes the cart's
// total and item count and saves the snapshot through the injected store
// before returning, so the persisted cart is never out of step with the one
// handed back to the caller.
type CartService struct {
	store repositories.CartStore
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.CartStore) *CartService {
	return &CartService{
		store: store,
	}
}

// Get loads the current cart for an owner.
func (s *CartService) Get(ownerID string) (*models.Cart, error) {
	cart, err := s.store.Load(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// AddItem merges the product into the cart: an existing line for the same
// product gains one unit, otherwise a new line is appended with quantity 1.
func (s *CartService) AddItem(ownerID string, product models.Product) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		for i := range cart.Lines {
			if cart.Lines[i].ProductID == product.ID {
				cart.Lines[i].Quantity++
				return
			}
		}
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPrice:       product.Price,
			Quantity:        1,
			PrepTimeMinutes: product.PrepTimeMinutes,
		})
	})
}

// RemoveItem deletes the line for a product.
func (s *CartService) RemoveItem(ownerID string, productID string) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		removeLine(cart, productID)
	})
}

// SetQuantity overwrites the quantity of a line. A quantity of zero or less
// is equivalent to removing the line.
func (s *CartService) SetQuantity(ownerID string, productID string, qty int) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		if qty <= 0 {
			removeLine(cart, productID)
			return
		}
		for i := range cart.Lines {
			if cart.Lines[i].ProductID == productID {
				cart.Lines[i].Quantity = qty
				return
			}
		}
	})
}

// Clear empties the cart. The customer identity sub-state survives so the
// cashier does not re-enter it between consecutive orders.
func (s *CartService) Clear(ownerID string) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		customer := cart.Customer
		*cart = models.Cart{Customer: customer}
	})
}

// SetDeliveryType records the chosen delivery type.
func (s *CartService) SetDeliveryType(ownerID string, t models.DeliveryType) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		cart.DeliveryType = t
	})
}

// SetAddress shallow-merges the non-empty fields of addr into the cart's
// address.
func (s *CartService) SetAddress(ownerID string, addr models.Address) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		mergeAddress(&cart.Address, addr)
	})
}

// SetCustomer records the counter customer identity.
func (s *CartService) SetCustomer(ownerID string, customer models.CartCustomer) (*models.Cart, error) {
	return s.mutate(ownerID, func(cart *models.Cart) {
		cart.Customer = customer
	})
}

// EstimatedPrepTime is the estimated preparation time for the whole cart:
// the slowest line wins, with a 15-minute floor for non-empty carts.
func EstimatedPrepTime(cart *models.Cart) int {
	if len(cart.Lines) == 0 {
		return 0
	}
	max := 0
	for _, line := range cart.Lines {
		if line.PrepTimeMinutes > max {
			max = line.PrepTimeMinutes
		}
	}
	if max < defaultPrepTimeMinutes {
		return defaultPrepTimeMinutes
	}
	return max
}

func (s *CartService) mutate(ownerID string, fn func(cart *models.Cart)) (*models.Cart, error) {
	cart, err := s.store.Load(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	fn(cart)
	recompute(cart)

	if err := s.store.Save(ownerID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func recompute(cart *models.Cart) {
	total := 0.0
	count := 0
	for _, line := range cart.Lines {
		total += line.Subtotal()
		count += line.Quantity
	}
	cart.Total = total
	cart.ItemCount = count
}

func removeLine(cart *models.Cart, productID string) {
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			return
		}
	}
}

func mergeAddress(dst *models.Address, src models.Address) {
	if src.Street != "" {
		dst.Street = src.Street
	}
	if src.ExteriorNumber != "" {
		dst.ExteriorNumber = src.ExteriorNumber
	}
	if src.InteriorNumber != "" {
		dst.InteriorNumber = src.InteriorNumber
	}
	if src.Neighborhood != "" {
		dst.Neighborhood = src.Neighborhood
	}
	if src.City != "" {
		dst.City = src.City
	}
	if src.State != "" {
		dst.State = src.State
	}
	if src.PostalCode != "" {
		dst.PostalCode = src.PostalCode
	}
	if src.DeliveryNotes != "" {
		dst.DeliveryNotes = src.DeliveryNotes
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
}
