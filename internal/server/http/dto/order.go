package dto

import "time"

// OrderItemResponse is one line-item snapshot of an order.
type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// OrderResponse describes an order for API consumers.
type OrderResponse struct {
	Number      string              `json:"number"`
	Status      string              `json:"status"`
	PaymentType string              `json:"payment_type"`
	Total       string              `json:"total"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	PaidAt      *time.Time          `json:"paid_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}
