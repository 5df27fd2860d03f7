package model

import "time"

// ArtifactStatus describes whether a pickup artifact may be honored.
type ArtifactStatus string

const (
	// ArtifactStatusPending marks the prepaid placeholder created before
	// payment confirmation. It carries no payload and never verifies.
	ArtifactStatusPending ArtifactStatus = "PENDING"
	ArtifactStatusActive  ArtifactStatus = "ACTIVE"
)

// PickupArtifact is the scannable proof of an order for the pickup counter.
// At most one row exists per order; re-issuing replaces payload and nonce so
// only the most recently issued code is honored.
type PickupArtifact struct {
	ID          int64
	OrderID     int64
	PaymentType PaymentType
	Payload     string
	Nonce       string
	ExpiresAt   *time.Time
	Status      ArtifactStatus
	IssuedAt    time.Time
}
