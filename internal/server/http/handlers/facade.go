package handlers

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
	"github.com/tinoe0404/eTuckshop-sub000/internal/worker"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, phone, name, pin string) (string, error)
	Authenticate(ctx context.Context, phone, pin string) (string, error)
	ParseToken(token string) (int64, error)
}

// ShopFacade encapsulates cart and order operations exposed via HTTP.
type ShopFacade interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	CartContents(ctx context.Context, userID int64) (*model.CartContents, error)
	Checkout(ctx context.Context, userID int64, paymentType model.PaymentType) (*usecase.CheckoutResult, error)
	OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
}

// FulfillmentFacade provides the counter-side and provider-side operations.
type FulfillmentFacade interface {
	ConfirmPayment(ctx context.Context, orderNumber string) (*model.Order, error)
	VerifyPickup(ctx context.Context, code string) (*model.Order, error)
}

// TuckshopFacade aggregates the full set of operations used across handlers.
type TuckshopFacade interface {
	AuthFacade
	ShopFacade
	FulfillmentFacade
}

// Enqueuer accepts inbound chat messages for asynchronous processing.
type Enqueuer interface {
	Enqueue(msg worker.Message) bool
}
