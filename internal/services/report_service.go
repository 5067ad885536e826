package services

import (
	"sync"

	"ristorante/internal/models"
	"ristorante/internal/repositories"
)

// IncomeSummary aggregates orders, payments and counter sales for the admin
// dashboard.
type IncomeSummary struct {
	OrderCount    int     `json:"order_count"`
	PaymentCount  int     `json:"payment_count"`
	ApprovedTotal float64 `json:"approved_total"`
	PendingTotal  float64 `json:"pending_total"`
	SaleCount     int     `json:"sale_count"`
	SaleTotal     float64 `json:"sale_total"`
}

// ReportService builds aggregate views over orders, payments and sales.
type ReportService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	saleRepo    repositories.SaleRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	saleRepo repositories.SaleRepository,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
	}
}

// Income fetches orders, payments and sales concurrently and folds them
// into a single summary. The first fetch error aborts the report.
func (s *ReportService) Income() (*IncomeSummary, error) {
	var (
		wg       sync.WaitGroup
		orders   []models.Order
		payments []models.Payment
		sales    []models.Sale
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		orders, errs[0] = s.orderRepo.GetAll()
	}()
	go func() {
		defer wg.Done()
		payments, errs[1] = s.paymentRepo.GetAll()
	}()
	go func() {
		defer wg.Done()
		sales, errs[2] = s.saleRepo.GetAll()
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, remoteErr("load report data", err)
		}
	}

	summary := &IncomeSummary{
		OrderCount:   len(orders),
		PaymentCount: len(payments),
		SaleCount:    len(sales),
	}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentApproved:
			summary.ApprovedTotal += p.Amount
		case models.PaymentPending:
			summary.PendingTotal += p.Amount
		}
	}
	for _, v := range sales {
		summary.SaleTotal += v.Amount
	}
	return summary, nil
}

// SalesByEmployee returns the counter sales registered by one employee.
func (s *ReportService) SalesByEmployee(employeeID string) ([]models.Sale, error) {
	if employeeID == "" {
		return nil, &ValidationError{Field: "employee_id", Message: "employee id is required"}
	}
	return s.saleRepo.GetByEmployee(employeeID)
}

// AllSales returns every counter sale.
func (s *ReportService) AllSales() ([]models.Sale, error) {
	return s.saleRepo.GetAll()
}
