package repository

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Place, MarkPaid,
// Complete and Cancel are multi-statement transactions; concurrent invocations
// against the same products or order serialize on row locks.
type OrderRepository interface {
	// Place atomically creates the order header and line-item snapshots from
	// the customer's cart, decrements product stock and clears the cart.
	// Fails with ErrEmptyCart or InsufficientStockError, leaving everything
	// untouched.
	Place(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// MarkPaid advances a PENDING prepaid order to PAID. Calling it again for
	// an already PAID order returns the order unchanged.
	MarkPaid(ctx context.Context, number string) (*model.Order, error)
	// Complete marks a picked-up order COMPLETED.
	Complete(ctx context.Context, orderID int64) (*model.Order, error)
	// Cancel moves a PENDING order to CANCELLED and restores product stock.
	Cancel(ctx context.Context, orderID int64) error
}
