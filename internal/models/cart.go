package models

// CartLine is one product in the cart with its quantity. Price and prep time
// are snapshotted from the product when the line is created.
type CartLine struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartCustomer is the counter variant's customer identity sub-state. It
// survives Clear so the cashier does not re-enter it between orders.
type CartCustomer struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Cart aggregates the lines of an in-progress order together with the chosen
// delivery type and address. Lines keep insertion order. Total and ItemCount
// are recomputed by the cart service after every mutation so that
// Total == sum(line.UnitPrice*line.Quantity) always holds.
type Cart struct {
	Lines        []CartLine   `json:"lines"`
	Total        float64      `json:"total"`
	ItemCount    int          `json:"item_count"`
	DeliveryType DeliveryType `json:"delivery_type,omitempty"`
	Address      Address      `json:"address"`
	Customer     CartCustomer `json:"customer"`
}
