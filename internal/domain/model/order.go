package model

import "time"

// OrderStatus describes delivery lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusRejected   OrderStatus = "REJECTED"
)

// Valid reports whether s belongs to the closed status enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusRejected:
		return true
	}
	return false
}

// Title returns the customer-facing status name.
func (s OrderStatus) Title() string {
	switch s {
	case OrderStatusProcessing:
		return "В обработке"
	case OrderStatusShipped:
		return "Отправлен"
	case OrderStatusDelivered:
		return "Доставлен"
	case OrderStatusRejected:
		return "Отклонён"
	}
	return string(s)
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRejected
}

// Order is one approved line item with a mutable delivery status.
// The ledger is line-grained: approving a pending order creates one row
// per snapshotted line. LineTotal is computed once at submit time and
// never recomputed from catalog state.
type Order struct {
	ID        int64
	UserID    int64
	Handle    string
	Item      string
	Quantity  int32
	UnitPrice int64
	LineTotal int64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
