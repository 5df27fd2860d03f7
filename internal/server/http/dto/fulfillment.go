package dto

// ConfirmPaymentRequest is the payment provider confirmation callback payload.
type ConfirmPaymentRequest struct {
	Order string `json:"order"`
}

// VerifyPickupRequest carries the scanned pickup code.
type VerifyPickupRequest struct {
	Code string `json:"code"`
}

// VerifyPickupResponse reports the completed order after a successful scan.
type VerifyPickupResponse struct {
	Order OrderResponse `json:"order"`
}
