package model

import "time"

// User represents a registered tuckshop customer, keyed by phone number.
type User struct {
	ID        int64
	Phone     string
	Name      string
	PINHash   string
	CreatedAt time.Time
}
