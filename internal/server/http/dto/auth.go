package dto

// RegisterRequest describes the customer registration payload.
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	PIN   string `json:"pin"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}
