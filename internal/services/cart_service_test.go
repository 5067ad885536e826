package services_test

import (
	"testing"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartService() *services.CartService {
	return services.NewCartService(repositories.NewMemoryCartStore())
}

func TestCartService_AddItemMergesLines(t *testing.T) {
	svc := newCartService()
	pozole := models.Product{ID: "p-1", Name: "Pozole Verde", Price: 95, PrepTimeMinutes: 20}
	tacos := models.Product{ID: "p-2", Name: "Tacos de Asada", Price: 70, PrepTimeMinutes: 15}

	cart, err := svc.AddItem("client-1", pozole)
	assert.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	cart, err = svc.AddItem("client-1", pozole)
	assert.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	cart, err = svc.AddItem("client-1", tacos)
	assert.NoError(t, err)
	assert.Len(t, cart.Lines, 2)

	// Total and item count always track the lines.
	assert.InDelta(t, 260.0, cart.Total, 0.0001)
	assert.Equal(t, 3, cart.ItemCount)
}

func TestCartService_SetQuantity(t *testing.T) {
	svc := newCartService()
	pozole := models.Product{ID: "p-1", Name: "Pozole Verde", Price: 95}

	_, err := svc.AddItem("client-1", pozole)
	assert.NoError(t, err)

	cart, err := svc.SetQuantity("client-1", "p-1", 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.InDelta(t, 380.0, cart.Total, 0.0001)

	// Zero quantity removes the line entirely.
	cart, err = svc.SetQuantity("client-1", "p-1", 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.InDelta(t, 0.0, cart.Total, 0.0001)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestCartService_RemoveItem(t *testing.T) {
	svc := newCartService()
	_, err := svc.AddItem("client-1", models.Product{ID: "p-1", Name: "Pozole Verde", Price: 95})
	assert.NoError(t, err)
	_, err = svc.AddItem("client-1", models.Product{ID: "p-2", Name: "Tacos de Asada", Price: 70})
	assert.NoError(t, err)

	cart, err := svc.RemoveItem("client-1", "p-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, "p-2", cart.Lines[0].ProductID)
	assert.InDelta(t, 70.0, cart.Total, 0.0001)
}

func TestCartService_ClearKeepsCustomer(t *testing.T) {
	svc := newCartService()
	_, err := svc.AddItem("till-1", models.Product{ID: "p-1", Name: "Pozole Verde", Price: 95})
	assert.NoError(t, err)
	_, err = svc.SetCustomer("till-1", models.CartCustomer{ClientID: "7", Name: "Ana", Phone: "7441234567"})
	assert.NoError(t, err)

	cart, err := svc.Clear("till-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.InDelta(t, 0.0, cart.Total, 0.0001)
	assert.Equal(t, "Ana", cart.Customer.Name)
	assert.Equal(t, "7", cart.Customer.ClientID)
}

func TestCartService_SetAddressMergesNonEmptyFields(t *testing.T) {
	svc := newCartService()
	_, err := svc.SetAddress("client-1", models.Address{Street: "Av. Insurgentes", ExteriorNumber: "12"})
	assert.NoError(t, err)

	cart, err := svc.SetAddress("client-1", models.Address{Neighborhood: "Centro", Phone: "7441234567"})
	assert.NoError(t, err)
	assert.Equal(t, "Av. Insurgentes", cart.Address.Street)
	assert.Equal(t, "12", cart.Address.ExteriorNumber)
	assert.Equal(t, "Centro", cart.Address.Neighborhood)
	assert.Equal(t, "7441234567", cart.Address.Phone)
}

func TestCartService_CartsAreIsolatedPerOwner(t *testing.T) {
	svc := newCartService()
	_, err := svc.AddItem("client-1", models.Product{ID: "p-1", Name: "Pozole Verde", Price: 95})
	assert.NoError(t, err)

	cart, err := svc.Get("client-2")
	assert.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestEstimatedPrepTime(t *testing.T) {
	assert.Equal(t, 0, services.EstimatedPrepTime(&models.Cart{}))

	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p-1", PrepTimeMinutes: 20},
		{ProductID: "p-2", PrepTimeMinutes: 35},
		{ProductID: "p-3"},
	}}
	assert.Equal(t, 35, services.EstimatedPrepTime(cart))

	floor := &models.Cart{Lines: []models.CartLine{{ProductID: "p-1", PrepTimeMinutes: 5}}}
	assert.Equal(t, 15, services.EstimatedPrepTime(floor))
}
