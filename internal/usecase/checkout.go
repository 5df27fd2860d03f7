package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tinoe0404/eTuckshop-sub000/internal/artifact"
	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/cache"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/repository"
)

// PaymentLinker creates hosted payment links for prepaid orders.
type PaymentLinker interface {
	CreateLink(ctx context.Context, amount decimal.Decimal, reference, payer string) (string, error)
}

// CheckoutResult reports a committed checkout. ArtifactErr carries the
// partial-failure case: the order exists but the pickup code or payment link
// could not be produced.
type CheckoutResult struct {
	Order       *model.Order
	Artifact    *model.PickupArtifact
	PaymentURL  string
	ArtifactErr error
}

// CheckoutUseCase turns a cart into an order and branches on payment method.
// The stock check, order creation, stock decrement and cart clear are one
// transaction in the order repository; everything after the commit is
// recoverable and never rolls the order back.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	artifacts repository.ArtifactRepository
	users     repository.UserRepository
	issuer    *artifact.Issuer
	payments  PaymentLinker
	cache     *cache.Cache
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	artifacts repository.ArtifactRepository,
	users repository.UserRepository,
	issuer *artifact.Issuer,
	payments PaymentLinker,
	c *cache.Cache,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:    orders,
		artifacts: artifacts,
		users:     users,
		issuer:    issuer,
		payments:  payments,
		cache:     c,
		logger:    logger,
	}
}

// Checkout places an order for the customer's whole cart. Fails with
// ErrEmptyCart or InsufficientStockError before anything is written.
func (u *CheckoutUseCase) Checkout(ctx context.Context, userID int64, paymentType model.PaymentType) (*CheckoutResult, error) {
	order, err := u.orders.Place(ctx, userID, NewOrderNumber(), paymentType)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx, cartCacheKey(userID))

	result := &CheckoutResult{Order: order}
	switch paymentType {
	case model.PaymentTypeCash:
		u.issueCash(ctx, order, result)
	case model.PaymentTypePrepaid:
		u.preparePrepaid(ctx, userID, order, result)
	}
	return result, nil
}

func (u *CheckoutUseCase) issueCash(ctx context.Context, order *model.Order, result *CheckoutResult) {
	art, err := u.issuer.IssueCash(order)
	if err == nil {
		err = u.artifacts.Save(ctx, art)
	}
	if err != nil {
		u.logger.Error("pickup code issuance failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
		result.ArtifactErr = err
		return
	}
	result.Artifact = art
}

func (u *CheckoutUseCase) preparePrepaid(ctx context.Context, userID int64, order *model.Order, result *CheckoutResult) {
	// The placeholder is inert until payment confirmation issues the real
	// payload; it only reserves the artifact slot for the order.
	placeholder := u.issuer.Placeholder(order)
	if err := u.artifacts.Save(ctx, placeholder); err != nil {
		u.logger.Error("placeholder artifact save failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
		result.ArtifactErr = err
	} else {
		result.Artifact = placeholder
	}

	payer := ""
	if usr, err := u.users.GetByID(ctx, userID); err == nil {
		payer = usr.Phone
	}

	url, err := u.payments.CreateLink(ctx, order.Total, order.Number, payer)
	if err != nil {
		u.logger.Error("payment link creation failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
		result.ArtifactErr = err
		return
	}
	result.PaymentURL = url
}

// ConfirmPayment marks a prepaid order PAID and issues its pickup artifact.
// Repeated confirmations for an already PAID order are absorbed.
func (u *CheckoutUseCase) ConfirmPayment(ctx context.Context, orderNumber string) (*model.Order, error) {
	order, err := u.orders.MarkPaid(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	art, err := u.issuer.IssuePrepaid(order)
	if err == nil {
		err = u.artifacts.Save(ctx, art)
	}
	if err != nil {
		// The order stays PAID; the artifact can be re-issued later.
		u.logger.Error("prepaid artifact issuance failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
	}
	return order, nil
}

// VerifyPickup validates a scanned payload against the stored artifact and
// completes the order. Only the most recently issued, non-expired, ACTIVE
// artifact verifies; superseded payloads and prepaid placeholders never do.
func (u *CheckoutUseCase) VerifyPickup(ctx context.Context, encoded string) (*model.Order, error) {
	payload, err := u.issuer.Verify(encoded)
	if err != nil {
		return nil, err
	}

	stored, err := u.artifacts.GetByOrder(ctx, payload.OrderID)
	if err != nil {
		return nil, err
	}
	if stored.Status != model.ArtifactStatusActive || stored.Nonce != payload.Nonce {
		return nil, artifact.ErrInvalidPayload
	}

	return u.orders.Complete(ctx, payload.OrderID)
}

// Cancel voids a pending order and restores its stock.
func (u *CheckoutUseCase) Cancel(ctx context.Context, orderID int64) error {
	if err := u.orders.Cancel(ctx, orderID); err != nil {
		return err
	}
	return nil
}

// ReissuePickupCode generates a fresh cash pickup code for a pending order,
// invalidating the previous one.
func (u *CheckoutUseCase) ReissuePickupCode(ctx context.Context, orderID int64) (*model.PickupArtifact, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentType != model.PaymentTypeCash || order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrInvalidOrderState
	}
	art, err := u.issuer.IssueCash(order)
	if err != nil {
		return nil, err
	}
	if err := u.artifacts.Save(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// NewOrderNumber produces a short, human-legible, collision-resistant order
// token: TS-<base36 minute timestamp>-<random suffix>.
func NewOrderNumber() string {
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().Unix(), 36))
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("TS-%s-%s", stamp, suffix)
}
