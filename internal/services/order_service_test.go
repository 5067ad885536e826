package services_test

import (
	"fmt"
	"testing"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

// failingProductRepo simulates an unreachable product table.
type failingProductRepo struct{}

func (failingProductRepo) GetAll() ([]models.Product, error) {
	return nil, fmt.Errorf("connection reset")
}

func (failingProductRepo) GetByID(id string) (*models.Product, error) {
	return nil, fmt.Errorf("connection reset")
}

func (failingProductRepo) Create(product *models.Product) error {
	return fmt.Errorf("connection reset")
}

func (failingProductRepo) Update(product *models.Product) error {
	return fmt.Errorf("connection reset")
}

func (failingProductRepo) Delete(id string) error {
	return fmt.Errorf("connection reset")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	events := &recordingPublisher{}
	svc := services.NewOrderService(orderRepo, repositories.NewMockOrderLineRepository(),
		repositories.NewMockProductRepository(), repositories.NewMockPaymentRepository(), events)

	order := &models.Order{ClientID: "client-1", Status: models.OrderStatusPaid, DeliveryType: models.DeliveryHome}
	assert.NoError(t, orderRepo.Create(order))

	assert.NoError(t, svc.UpdateOrderStatus(order.ID, models.OrderStatusPreparing))
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, stored.Status)
	assert.Equal(t, []string{"pedido.estado_actualizado"}, events.keys)

	// Unknown statuses never reach the repository.
	err = svc.UpdateOrderStatus(order.ID, models.OrderStatus("CANCELADO"))
	assert.Error(t, err)
	assert.True(t, services.IsValidation(err))
	stored, _ = orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusPreparing, stored.Status)

	// A missing order surfaces as a remote failure.
	err = svc.UpdateOrderStatus("missing", models.OrderStatusReady)
	assert.Error(t, err)
	assert.False(t, services.IsValidation(err))
}

func TestOrderService_LinesByOrderEnrichesProducts(t *testing.T) {
	lineRepo := repositories.NewMockOrderLineRepository()
	productRepo := repositories.NewMockProductRepository()
	svc := services.NewOrderService(repositories.NewMockOrderRepository(), lineRepo,
		productRepo, repositories.NewMockPaymentRepository(), nil)

	pozole := models.Product{ID: "p-1", Name: "Pozole Verde", Description: "Con tostadas", Price: 95, PrepTimeMinutes: 20}
	assert.NoError(t, productRepo.Create(&pozole))

	assert.NoError(t, lineRepo.CreateBatch([]models.OrderLine{
		{OrderID: "order-1", ProductID: "p-1", Quantity: 2},
		{OrderID: "order-1", ProductID: "p-gone", Quantity: 1},
	}))

	lines, err := svc.LinesByOrder("order-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 2)

	assert.Equal(t, "Pozole Verde", lines[0].ProductName)
	assert.InDelta(t, 95.0, lines[0].UnitPrice, 0.0001)
	assert.Equal(t, 20, lines[0].PrepTimeMinutes)

	// A product removed from the menu degrades to placeholders instead of
	// failing the whole view.
	assert.Equal(t, "Producto #p-gone", lines[1].ProductName)
	assert.InDelta(t, 0.0, lines[1].UnitPrice, 0.0001)
	assert.Equal(t, "Sin descripcion", lines[1].Description)
}

func TestOrderService_LinesByOrderAllPlaceholdersOnRepoOutage(t *testing.T) {
	lineRepo := repositories.NewMockOrderLineRepository()
	svc := services.NewOrderService(repositories.NewMockOrderRepository(), lineRepo,
		failingProductRepo{}, repositories.NewMockPaymentRepository(), nil)

	assert.NoError(t, lineRepo.CreateBatch([]models.OrderLine{
		{OrderID: "order-1", ProductID: "p-1", Quantity: 1},
	}))

	lines, err := svc.LinesByOrder("order-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "Producto #p-1", lines[0].ProductName)
}

func TestOrderService_GetOrdersByClient(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(orderRepo, repositories.NewMockOrderLineRepository(),
		repositories.NewMockProductRepository(), repositories.NewMockPaymentRepository(), nil)

	assert.NoError(t, orderRepo.Create(&models.Order{ClientID: "client-1", Status: models.OrderStatusRegistered, DeliveryType: models.DeliveryToGo}))
	assert.NoError(t, orderRepo.Create(&models.Order{ClientID: "client-2", Status: models.OrderStatusRegistered, DeliveryType: models.DeliveryToGo}))

	orders, err := svc.GetOrdersByClient("client-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "client-1", orders[0].ClientID)

	_, err = svc.GetOrdersByClient("")
	assert.Error(t, err)
	assert.True(t, services.IsValidation(err))
}
