package services

import (
	"fmt"
	"log"
	"sync"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/pkg/rabbitmq"
)

// OrderService exposes the order read paths used by clients and staff, plus
// the staff status update.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	lineRepo    repositories.OrderLineRepository
	productRepo repositories.ProductRepository
	paymentRepo repositories.PaymentRepository
	events      EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	lineRepo repositories.OrderLineRepository,
	productRepo repositories.ProductRepository,
	paymentRepo repositories.PaymentRepository,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		events:      events,
	}
}

// GetAllOrders returns every order, newest first per the repository.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByClient returns the orders placed by one client.
func (s *OrderService) GetOrdersByClient(clientID string) ([]models.Order, error) {
	if clientID == "" {
		return nil, &ValidationError{Field: "client_id", Message: "client id is required"}
	}
	return s.orderRepo.GetByClient(clientID)
}

// GetOrderByID returns one order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "order id is required"}
	}
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus sets a new status on an order after checking it is one
// of the known statuses, then publishes the change.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "order id is required"}
	}
	if !models.ValidOrderStatuses[status] {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown order status %q", status)}
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return remoteErr("update order status", err)
	}

	if s.events != nil {
		err := s.events.Publish(rabbitmq.KeyStatusUpdated, map[string]interface{}{
			"orderID": id,
			"status":  status,
		})
		if err != nil {
			log.Printf("Warning: failed to publish status update event: %v", err)
		}
	}
	return nil
}

// LinesByOrder returns the lines of an order enriched with product data.
// Products are fetched concurrently, one lookup per line; a line whose
// product can no longer be found degrades to placeholder fields instead of
// failing the whole order view.
func (s *OrderService) LinesByOrder(orderID string) ([]models.OrderLine, error) {
	if orderID == "" {
		return nil, &ValidationError{Field: "order_id", Message: "order id is required"}
	}
	lines, err := s.lineRepo.GetByOrder(orderID)
	if err != nil {
		return nil, remoteErr("get order lines", err)
	}

	var wg sync.WaitGroup
	for i := range lines {
		wg.Add(1)
		go func(line *models.OrderLine) {
			defer wg.Done()
			product, err := s.productRepo.GetByID(line.ProductID)
			if err != nil {
				line.ProductName = fmt.Sprintf("Producto #%s", line.ProductID)
				line.Description = "Sin descripcion"
				line.UnitPrice = 0
				line.PrepTimeMinutes = defaultPrepTimeMinutes
				return
			}
			line.ProductName = product.Name
			line.Description = product.Description
			line.UnitPrice = product.Price
			line.Image = product.Image
			line.PrepTimeMinutes = product.PrepTimeMinutes
		}(&lines[i])
	}
	wg.Wait()

	return lines, nil
}

// PaymentsByOrder returns the payments recorded against an order.
func (s *OrderService) PaymentsByOrder(orderID string) ([]models.Payment, error) {
	if orderID == "" {
		return nil, &ValidationError{Field: "order_id", Message: "order id is required"}
	}
	return s.paymentRepo.GetByOrder(orderID)
}
