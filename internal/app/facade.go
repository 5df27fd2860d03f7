package app

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
)

// TuckshopFacade aggregates the use cases behind one surface consumed by the
// chat state machine and the HTTP handlers.
type TuckshopFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
}

// NewTuckshopFacade constructs the application facade.
func NewTuckshopFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
) *TuckshopFacade {
	return &TuckshopFacade{auth: auth, catalog: catalog, cart: cart, checkout: checkout, orders: orders}
}

// --- authentication ---

func (f *TuckshopFacade) Register(ctx context.Context, phone, name, pin string) (string, error) {
	_, token, err := f.auth.Register(ctx, phone, name, pin)
	return token, err
}

func (f *TuckshopFacade) Authenticate(ctx context.Context, phone, pin string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, phone, pin)
	return token, err
}

func (f *TuckshopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *TuckshopFacade) CustomerByPhone(ctx context.Context, phone string) (*model.User, error) {
	return f.auth.CustomerByPhone(ctx, phone)
}

func (f *TuckshopFacade) RegisterCustomer(ctx context.Context, phone, name, pin string) (*model.User, error) {
	return f.auth.RegisterCustomer(ctx, phone, name, pin)
}

func (f *TuckshopFacade) AuthenticateCustomer(ctx context.Context, phone, pin string) (*model.User, error) {
	return f.auth.AuthenticateCustomer(ctx, phone, pin)
}

// --- catalog ---

func (f *TuckshopFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *TuckshopFacade) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return f.catalog.ProductsByCategory(ctx, categoryID)
}

func (f *TuckshopFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

// --- cart ---

func (f *TuckshopFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	return f.cart.AddItem(ctx, userID, productID, quantity)
}

func (f *TuckshopFacade) CartContents(ctx context.Context, userID int64) (*model.CartContents, error) {
	return f.cart.Contents(ctx, userID)
}

// --- checkout and fulfillment ---

func (f *TuckshopFacade) Checkout(ctx context.Context, userID int64, paymentType model.PaymentType) (*usecase.CheckoutResult, error) {
	return f.checkout.Checkout(ctx, userID, paymentType)
}

func (f *TuckshopFacade) ConfirmPayment(ctx context.Context, orderNumber string) (*model.Order, error) {
	return f.checkout.ConfirmPayment(ctx, orderNumber)
}

func (f *TuckshopFacade) VerifyPickup(ctx context.Context, code string) (*model.Order, error) {
	return f.checkout.VerifyPickup(ctx, code)
}

// --- orders ---

func (f *TuckshopFacade) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *TuckshopFacade) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}
