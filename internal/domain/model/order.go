package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle. Terminal states are not reversible.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentType selects the fulfillment branch at checkout.
type PaymentType string

const (
	PaymentTypeCash    PaymentType = "CASH"
	PaymentTypePrepaid PaymentType = "PREPAID"
)

// Order is a placed purchase. Items and Total are immutable after creation;
// only Status and its timestamps advance.
type Order struct {
	ID          int64
	Number      string
	UserID      int64
	Status      OrderStatus
	PaymentType PaymentType
	Total       decimal.Decimal
	Items       []OrderItem
	CreatedAt   time.Time
	PaidAt      *time.Time
	CompletedAt *time.Time
}

// OrderItem snapshots product name, price and quantity at order creation so
// later catalog edits never change a past order.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}
