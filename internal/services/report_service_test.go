package services_test

import (
	"testing"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestReportService_Income(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	saleRepo := repositories.NewMockSaleRepository()
	svc := services.NewReportService(orderRepo, paymentRepo, saleRepo)

	assert.NoError(t, orderRepo.Create(&models.Order{ClientID: "c-1", Status: models.OrderStatusPaid, DeliveryType: models.DeliveryToGo}))
	assert.NoError(t, orderRepo.Create(&models.Order{ClientID: "c-2", Status: models.OrderStatusRegistered, DeliveryType: models.DeliveryToGo}))

	assert.NoError(t, paymentRepo.Create(&models.Payment{OrderID: "o-1", Method: models.PaymentCard, Status: models.PaymentApproved, Amount: 144.29}))
	assert.NoError(t, paymentRepo.Create(&models.Payment{OrderID: "o-2", Method: models.PaymentCash, Status: models.PaymentPending, Amount: 130}))

	assert.NoError(t, saleRepo.Create(&models.Sale{OrderID: "o-3", EmployeeID: "emp-1", Method: models.PaymentCash, Amount: 85}))

	summary, err := svc.Income()
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.OrderCount)
	assert.Equal(t, 2, summary.PaymentCount)
	assert.InDelta(t, 144.29, summary.ApprovedTotal, 0.0001)
	assert.InDelta(t, 130.0, summary.PendingTotal, 0.0001)
	assert.Equal(t, 1, summary.SaleCount)
	assert.InDelta(t, 85.0, summary.SaleTotal, 0.0001)
}

func TestReportService_SalesByEmployee(t *testing.T) {
	saleRepo := repositories.NewMockSaleRepository()
	svc := services.NewReportService(repositories.NewMockOrderRepository(), repositories.NewMockPaymentRepository(), saleRepo)

	assert.NoError(t, saleRepo.Create(&models.Sale{OrderID: "o-1", EmployeeID: "emp-1", Method: models.PaymentCash, Amount: 85}))
	assert.NoError(t, saleRepo.Create(&models.Sale{OrderID: "o-2", EmployeeID: "emp-2", Method: models.PaymentCard, Amount: 120}))

	sales, err := svc.SalesByEmployee("emp-1")
	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "o-1", sales[0].OrderID)

	_, err = svc.SalesByEmployee("")
	assert.Error(t, err)
	assert.True(t, services.IsValidation(err))
}
