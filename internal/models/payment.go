package models

import "time"

// PaymentMethod is how an order was (or will be) paid. Clients can use cash
// or card; the counter flow additionally accepts wallet and bank transfer.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "EFECTIVO"
	PaymentCard     PaymentMethod = "TARJETA"
	PaymentWallet   PaymentMethod = "MERCADO_PAGO"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
)

// PaymentStatus distinguishes money already collected from money promised.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDIENTE"
	PaymentApproved PaymentStatus = "APROBADO"
)

// Payment records one payment against an order. Exactly one payment is
// created per order in the modeled flows; the amount for card payments
// includes the processing surcharge.
type Payment struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string        `json:"order_id" gorm:"index;type:varchar(36)" validate:"required"`
	Method    PaymentMethod `json:"method" gorm:"type:varchar(20)" validate:"required"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(20)" validate:"required"`
	Reference string        `json:"reference"`
	Amount    float64       `json:"amount" validate:"gte=0"`
	PaidAt    time.Time     `json:"paid_at"`
}

// Sale is the counter-sale record the cashier flow writes alongside the
// order, linking it to the employee who rang it up.
type Sale struct {
	ID         string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string        `json:"order_id" gorm:"index;type:varchar(36)" validate:"required"`
	EmployeeID string        `json:"employee_id" gorm:"index;type:varchar(36)" validate:"required"`
	Method     PaymentMethod `json:"method" gorm:"type:varchar(20)"`
	Amount     float64       `json:"amount" validate:"gte=0"`
	SoldAt     time.Time     `json:"sold_at"`
}
