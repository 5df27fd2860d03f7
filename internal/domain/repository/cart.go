package repository

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// CartRepository manages the per-customer cart.
type CartRepository interface {
	// UpsertItem adds quantity to the (cart, product) line, creating the
	// cart and the line as needed.
	UpsertItem(ctx context.Context, userID, productID int64, quantity int) error
	// Contents loads the cart joined with current product data. A missing
	// cart yields empty contents, not an error.
	Contents(ctx context.Context, userID int64) (*model.CartContents, error)
	Clear(ctx context.Context, userID int64) error
}
