package services

import (
	"sync"
	"time"
	"unicode"

	"ristorante/internal/models"
	"ristorante/internal/repositories"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Weekday names in the unaccented form the day lookup compares against.
var weekdayNames = [...]string{
	"Domingo", "Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado",
}

// SpanishWeekday returns the unaccented Spanish weekday name for t.
func SpanishWeekday(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// NormalizeWeekday strips accents from a weekday name ("Miércoles" ->
// "Miercoles"). The stored day set and the computed weekday use inconsistent
// accenting, so both sides are normalized before comparison.
func NormalizeWeekday(day string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, day)
	if err != nil {
		return day
	}
	return out
}

// AvailabilityService decides which products can be ordered on a given day.
type AvailabilityService struct {
	productRepo repositories.ProductRepository
	dayRepo     repositories.ProductDayRepository
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(productRepo repositories.ProductRepository, dayRepo repositories.ProductDayRepository) *AvailabilityService {
	return &AvailabilityService{
		productRepo: productRepo,
		dayRepo:     dayRepo,
	}
}

// IsAvailableToday reports whether a product can be ordered on the given
// weekday. A product flagged unavailable is never orderable; a failing day
// lookup counts as not available (fail closed).
func (s *AvailabilityService) IsAvailableToday(product models.Product, weekday string) bool {
	if !product.Available {
		return false
	}

	days, err := s.dayRepo.DaysForProduct(product.ID)
	if err != nil {
		return false
	}

	want := NormalizeWeekday(weekday)
	for _, day := range days {
		if NormalizeWeekday(day) == want {
			return true
		}
	}
	return false
}

// FilterAvailableToday returns the subset of products orderable on the given
// weekday, preserving input order. The per-product lookups run concurrently.
func (s *AvailabilityService) FilterAvailableToday(products []models.Product, weekday string) []models.Product {
	available := make([]bool, len(products))

	var wg sync.WaitGroup
	for i := range products {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			available[i] = s.IsAvailableToday(products[i], weekday)
		}(i)
	}
	wg.Wait()

	result := make([]models.Product, 0, len(products))
	for i, p := range products {
		if available[i] {
			result = append(result, p)
		}
	}
	return result
}

// MenuForToday loads every product and filters it down to today's menu.
func (s *AvailabilityService) MenuForToday(now time.Time) ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, remoteErr("list products", err)
	}
	return s.FilterAvailableToday(products, SpanishWeekday(now)), nil
}
