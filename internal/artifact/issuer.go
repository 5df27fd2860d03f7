package artifact

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

var (
	ErrInvalidPayload = errors.New("invalid pickup payload")
	ErrExpired        = errors.New("pickup payload expired")
)

// Line is a snapshot of one order line inside the payload.
type Line struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// Payload carries everything a pickup-counter scanner needs to verify an
// order's authenticity and amount without a second lookup.
type Payload struct {
	OrderID     int64             `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	PaymentType model.PaymentType `json:"payment_type"`
	Status      model.OrderStatus `json:"status"`
	Nonce       string            `json:"nonce"`
	Lines       []Line            `json:"lines"`
	Total       string            `json:"total"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"`
}

// Issuer builds HMAC-signed pickup payloads. Pure data construction; it never
// mutates stock, cart or order totals.
type Issuer struct {
	secret  []byte
	cashTTL time.Duration
	now     func() time.Time
}

// NewIssuer builds an issuer. cashTTL is the validity window for cash pickup
// codes.
func NewIssuer(secret string, cashTTL time.Duration) *Issuer {
	if cashTTL <= 0 {
		cashTTL = 90 * time.Second
	}
	return &Issuer{secret: []byte(secret), cashTTL: cashTTL, now: time.Now}
}

// SetClock replaces the time source, for expiry tests.
func (i *Issuer) SetClock(now func() time.Time) { i.now = now }

// IssueCash produces a short-lived pickup artifact for a cash order. Calling
// it again replaces the previous payload and nonce, so only the most recent
// issue verifies against the stored artifact.
func (i *Issuer) IssueCash(order *model.Order) (*model.PickupArtifact, error) {
	expires := i.now().Add(i.cashTTL)
	return i.issue(order, model.PaymentTypeCash, &expires)
}

// IssuePrepaid produces the pickup artifact for a paid prepaid order. No
// expiry: payment already happened.
func (i *Issuer) IssuePrepaid(order *model.Order) (*model.PickupArtifact, error) {
	return i.issue(order, model.PaymentTypePrepaid, nil)
}

// Placeholder returns the inert artifact persisted for a prepaid order before
// payment confirmation. It has no payload and never verifies.
func (i *Issuer) Placeholder(order *model.Order) *model.PickupArtifact {
	return &model.PickupArtifact{
		OrderID:     order.ID,
		PaymentType: model.PaymentTypePrepaid,
		Status:      model.ArtifactStatusPending,
		IssuedAt:    i.now(),
	}
}

func (i *Issuer) issue(order *model.Order, paymentType model.PaymentType, expiresAt *time.Time) (*model.PickupArtifact, error) {
	payload := Payload{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		PaymentType: paymentType,
		Status:      order.Status,
		Nonce:       uuid.NewString(),
		Total:       order.Total.StringFixed(2),
		ExpiresAt:   expiresAt,
	}
	for _, item := range order.Items {
		payload.Lines = append(payload.Lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal.StringFixed(2),
		})
	}

	encoded, err := i.encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encode pickup payload: %w", err)
	}

	return &model.PickupArtifact{
		OrderID:     order.ID,
		PaymentType: paymentType,
		Payload:     encoded,
		Nonce:       payload.Nonce,
		ExpiresAt:   expiresAt,
		Status:      model.ArtifactStatusActive,
		IssuedAt:    i.now(),
	}, nil
}

// Verify checks the signature and expiry of an encoded payload and returns
// its decoded contents. An expired cash payload never verifies, even if
// otherwise well-formed.
func (i *Issuer) Verify(encoded string) (*Payload, error) {
	parts := strings.Split(encoded, ".")
	if len(parts) != 2 {
		return nil, ErrInvalidPayload
	}
	body, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidPayload
	}
	if !hmac.Equal([]byte(i.sign(parts[0])), []byte(parts[1])) {
		return nil, ErrInvalidPayload
	}
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrInvalidPayload
	}
	if payload.ExpiresAt != nil && i.now().After(*payload.ExpiresAt) {
		return nil, ErrExpired
	}
	return &payload, nil
}

func (i *Issuer) encode(payload Payload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + "." + i.sign(encoded), nil
}

func (i *Issuer) sign(body string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Amount parses the payload total for counter-side display.
func (p *Payload) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(p.Total)
}
