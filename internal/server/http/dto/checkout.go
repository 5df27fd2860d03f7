package dto

import "time"

// CheckoutRequest selects the payment method for checkout.
type CheckoutRequest struct {
	PaymentType string `json:"payment_type"`
}

// CheckoutResponse reports a committed checkout. Warning is set when the order
// was placed but the pickup code or payment link could not be produced.
type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	PickupCode string        `json:"pickup_code,omitempty"`
	ExpiresAt  *time.Time    `json:"expires_at,omitempty"`
	PaymentURL string        `json:"payment_url,omitempty"`
	Warning    string        `json:"warning,omitempty"`
}
