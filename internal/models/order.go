package models

import "time"

// OrderStatus is the lifecycle state of an order. Wire values are the
// Spanish constants the services exchange.
type OrderStatus string

const (
	OrderStatusRegistered OrderStatus = "REGISTRADO"
	OrderStatusPaid       OrderStatus = "PAGADO"
	OrderStatusPreparing  OrderStatus = "PREPARANDO"
	OrderStatusReady      OrderStatus = "LISTO"
	OrderStatusOnTheWay   OrderStatus = "EN_CAMINO"
	OrderStatusDelivered  OrderStatus = "ENTREGADO"
)

// ValidOrderStatuses lists every status accepted by the status-update path.
var ValidOrderStatuses = map[OrderStatus]bool{
	OrderStatusRegistered: true,
	OrderStatusPaid:       true,
	OrderStatusPreparing:  true,
	OrderStatusReady:      true,
	OrderStatusOnTheWay:   true,
	OrderStatusDelivered:  true,
}

// DeliveryType determines the address requirements and which status flow an
// order follows.
type DeliveryType string

const (
	DeliveryCounterPickup DeliveryType = "PICKUP_EN_MOSTRADOR"
	DeliveryToGo          DeliveryType = "PARA_LLEVAR"
	DeliveryHome          DeliveryType = "DOMICILIO"
)

// Address holds contact and delivery location data. It is embedded into the
// order as a denormalized copy at creation time, never referenced.
type Address struct {
	Street         string `json:"street"`
	ExteriorNumber string `json:"exterior_number"`
	InteriorNumber string `json:"interior_number,omitempty"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	DeliveryNotes  string `json:"delivery_notes,omitempty"`
	Phone          string `json:"phone" validate:"required,mxphone"`
}

// Order represents a customer order. Status is only advanced through the
// order service; callers treat it as read-only after creation.
type Order struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientID     string       `json:"client_id" gorm:"index;type:varchar(36)"`
	Status       OrderStatus  `json:"status" gorm:"type:varchar(20)"`
	DeliveryType DeliveryType `json:"delivery_type" gorm:"type:varchar(30)"`
	Online       bool         `json:"online"`
	Address      Address      `json:"address" gorm:"embedded"`
	Lines        []OrderLine  `json:"lines,omitempty" gorm:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// OrderLine is a single item within an order. The product fields are filled
// on the read path by joining against the product repository; only the ids
// and quantity are persisted.
type OrderLine struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   string `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`

	ProductName     string  `json:"product_name,omitempty" gorm:"-"`
	UnitPrice       float64 `json:"unit_price,omitempty" gorm:"-"`
	Description     string  `json:"description,omitempty" gorm:"-"`
	Image           string  `json:"image,omitempty" gorm:"-"`
	PrepTimeMinutes int     `json:"prep_time_minutes,omitempty" gorm:"-"`
}
