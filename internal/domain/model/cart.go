package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the per-customer shopping cart, created lazily.
type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Stock     int
}

// Subtotal returns the exact line price before rounding.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartContents is a loaded cart view used for rendering and checkout.
type CartContents struct {
	CartID int64
	Lines  []CartLine
}

// Total sums line subtotals, rounded once to currency precision.
func (c CartContents) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// Empty reports whether the cart has no lines.
func (c CartContents) Empty() bool {
	return len(c.Lines) == 0
}
