package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tinoe0404/eTuckshop-sub000/internal/artifact"
	"github.com/tinoe0404/eTuckshop-sub000/internal/cache"
	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
	testhelpers "github.com/tinoe0404/eTuckshop-sub000/internal/test"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
)

type checkoutFixture struct {
	uc        *usecase.CheckoutUseCase
	orders    *testhelpers.OrderRepositoryStub
	artifacts *testhelpers.ArtifactRepositoryStub
	users     *testhelpers.UserRepositoryStub
	issuer    *artifact.Issuer
	linker    *testhelpers.PaymentLinkerStub
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &checkoutFixture{
		orders:    &testhelpers.OrderRepositoryStub{},
		artifacts: testhelpers.NewArtifactRepositoryStub(),
		users:     testhelpers.NewUserRepositoryStub(),
		issuer:    artifact.NewIssuer("secret", 90*time.Second),
		linker:    &testhelpers.PaymentLinkerStub{},
	}
	f.uc = usecase.NewCheckoutUseCase(
		f.orders, f.artifacts, f.users, f.issuer, f.linker,
		cache.New(kv.NewMemory(), logger), logger,
	)
	return f
}

func placedOrder(paymentType model.PaymentType) *model.Order {
	return &model.Order{
		ID:          1,
		Number:      "TS-AB12-CD34",
		UserID:      1,
		Status:      model.OrderStatusPending,
		PaymentType: paymentType,
		Total:       decimal.NewFromFloat(21.5),
		Items: []model.OrderItem{
			{ProductID: 10, Name: "Chips", UnitPrice: decimal.NewFromFloat(7.5), Quantity: 2, Subtotal: decimal.NewFromFloat(15)},
		},
	}
}

func TestCheckoutCash(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.PlaceFn = func(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
		order := placedOrder(paymentType)
		order.Number = number
		return order, nil
	}

	result, err := f.uc.Checkout(context.Background(), 1, model.PaymentTypeCash)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.ArtifactErr != nil {
		t.Fatalf("unexpected artifact error: %v", result.ArtifactErr)
	}
	if result.Artifact == nil || result.Artifact.Status != model.ArtifactStatusActive {
		t.Fatalf("expected active artifact, got %+v", result.Artifact)
	}
	if f.artifacts.SaveCalls != 1 {
		t.Fatalf("expected one artifact save, got %d", f.artifacts.SaveCalls)
	}
	if _, err := f.issuer.Verify(result.Artifact.Payload); err != nil {
		t.Fatalf("issued payload must verify: %v", err)
	}
}

func TestCheckoutEmptyCartPassthrough(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.PlaceFn = func(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
		return nil, domainErrors.ErrEmptyCart
	}

	if _, err := f.uc.Checkout(context.Background(), 1, model.PaymentTypeCash); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if f.artifacts.SaveCalls != 0 {
		t.Fatal("failed placement must not touch artifacts")
	}
}

func TestCheckoutCashArtifactFailureKeepsOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.PlaceFn = func(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
		return placedOrder(paymentType), nil
	}
	f.artifacts.SaveFn = func(context.Context, *model.PickupArtifact) error {
		return errors.New("kv down")
	}

	result, err := f.uc.Checkout(context.Background(), 1, model.PaymentTypeCash)
	if err != nil {
		t.Fatalf("checkout must not fail after commit: %v", err)
	}
	if result.Order == nil {
		t.Fatal("order must be reported despite artifact failure")
	}
	if result.ArtifactErr == nil {
		t.Fatal("expected artifact error to be surfaced")
	}
	if result.Artifact != nil {
		t.Fatal("no artifact should be reported when save failed")
	}
}

func TestCheckoutPrepaid(t *testing.T) {
	f := newCheckoutFixture(t)
	if _, err := f.users.Create(context.Background(), "27820000001", "Alice", "hash:1234"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	f.orders.PlaceFn = func(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
		return placedOrder(paymentType), nil
	}
	var linkedPayer string
	f.linker.CreateLinkFn = func(ctx context.Context, amount decimal.Decimal, reference, payer string) (string, error) {
		linkedPayer = payer
		if !amount.Equal(decimal.NewFromFloat(21.5)) {
			t.Fatalf("unexpected amount %v", amount)
		}
		return "https://pay.example/" + reference, nil
	}

	result, err := f.uc.Checkout(context.Background(), 1, model.PaymentTypePrepaid)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !strings.HasPrefix(result.PaymentURL, "https://pay.example/") {
		t.Fatalf("expected payment link, got %q", result.PaymentURL)
	}
	if linkedPayer != "27820000001" {
		t.Fatalf("expected payer phone, got %q", linkedPayer)
	}

	stored := f.artifacts.LastSaved
	if stored == nil || stored.Status != model.ArtifactStatusPending || stored.Payload != "" {
		t.Fatalf("expected inert placeholder, got %+v", stored)
	}
}

func TestCheckoutPrepaidLinkFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.PlaceFn = func(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
		return placedOrder(paymentType), nil
	}
	f.linker.CreateLinkFn = func(context.Context, decimal.Decimal, string, string) (string, error) {
		return "", errors.New("provider down")
	}

	result, err := f.uc.Checkout(context.Background(), 1, model.PaymentTypePrepaid)
	if err != nil {
		t.Fatalf("checkout must not fail after commit: %v", err)
	}
	if result.PaymentURL != "" {
		t.Fatalf("expected no payment link, got %q", result.PaymentURL)
	}
	if result.ArtifactErr == nil {
		t.Fatal("expected link failure to be surfaced")
	}
}

func TestConfirmPaymentIssuesArtifact(t *testing.T) {
	f := newCheckoutFixture(t)
	order := placedOrder(model.PaymentTypePrepaid)
	f.orders.Orders = []model.Order{*order}

	confirmed, err := f.uc.ConfirmPayment(context.Background(), order.Number)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != model.OrderStatusPaid {
		t.Fatalf("expected PAID, got %v", confirmed.Status)
	}
	stored := f.artifacts.Artifacts[order.ID]
	if stored == nil || stored.Status != model.ArtifactStatusActive {
		t.Fatalf("expected active artifact after confirmation, got %+v", stored)
	}
	if stored.ExpiresAt != nil {
		t.Fatal("prepaid artifact must not expire")
	}

	// Providers retry confirmations.
	again, err := f.uc.ConfirmPayment(context.Background(), order.Number)
	if err != nil {
		t.Fatalf("repeated confirm failed: %v", err)
	}
	if again.Status != model.OrderStatusPaid {
		t.Fatalf("expected PAID on repeat, got %v", again.Status)
	}
}

func TestConfirmPaymentArtifactFailureKeepsPaid(t *testing.T) {
	f := newCheckoutFixture(t)
	order := placedOrder(model.PaymentTypePrepaid)
	f.orders.Orders = []model.Order{*order}
	f.artifacts.SaveFn = func(context.Context, *model.PickupArtifact) error {
		return errors.New("kv down")
	}

	confirmed, err := f.uc.ConfirmPayment(context.Background(), order.Number)
	if err != nil {
		t.Fatalf("confirm must absorb artifact failure: %v", err)
	}
	if confirmed.Status != model.OrderStatusPaid {
		t.Fatalf("expected PAID, got %v", confirmed.Status)
	}
}

func TestVerifyPickupCompletesOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	order := placedOrder(model.PaymentTypeCash)
	f.orders.Orders = []model.Order{*order}

	art, err := f.issuer.IssueCash(order)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := f.artifacts.Save(context.Background(), art); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	completed, err := f.uc.VerifyPickup(context.Background(), art.Payload)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if completed.Status != model.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %v", completed.Status)
	}
}

func TestVerifyPickupRejectsSupersededCode(t *testing.T) {
	f := newCheckoutFixture(t)
	order := placedOrder(model.PaymentTypeCash)
	f.orders.Orders = []model.Order{*order}

	first, err := f.issuer.IssueCash(order)
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	second, err := f.issuer.IssueCash(order)
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	if err := f.artifacts.Save(context.Background(), second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := f.uc.VerifyPickup(context.Background(), first.Payload); !errors.Is(err, artifact.ErrInvalidPayload) {
		t.Fatalf("superseded code must not verify, got %v", err)
	}
	if _, err := f.uc.VerifyPickup(context.Background(), second.Payload); err != nil {
		t.Fatalf("latest code must verify: %v", err)
	}
}

func TestVerifyPickupRejectsPlaceholderState(t *testing.T) {
	f := newCheckoutFixture(t)
	order := placedOrder(model.PaymentTypePrepaid)
	f.orders.Orders = []model.Order{*order}

	// A well-signed payload exists, but the stored artifact is still the
	// pre-payment placeholder.
	signed, err := f.issuer.IssuePrepaid(order)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := f.artifacts.Save(context.Background(), f.issuer.Placeholder(order)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := f.uc.VerifyPickup(context.Background(), signed.Payload); !errors.Is(err, artifact.ErrInvalidPayload) {
		t.Fatalf("placeholder-backed order must not verify, got %v", err)
	}
}

func TestReissuePickupCode(t *testing.T) {
	f := newCheckoutFixture(t)
	cash := placedOrder(model.PaymentTypeCash)
	prepaid := placedOrder(model.PaymentTypePrepaid)
	prepaid.ID = 2
	prepaid.Number = "TS-EF56-GH78"
	f.orders.Orders = []model.Order{*cash, *prepaid}

	art, err := f.uc.ReissuePickupCode(context.Background(), cash.ID)
	if err != nil {
		t.Fatalf("reissue failed: %v", err)
	}
	if art.Status != model.ArtifactStatusActive {
		t.Fatalf("expected active artifact, got %v", art.Status)
	}

	if _, err := f.uc.ReissuePickupCode(context.Background(), prepaid.ID); !errors.Is(err, domainErrors.ErrInvalidOrderState) {
		t.Fatalf("prepaid order must not get a cash re-issue, got %v", err)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	number := usecase.NewOrderNumber()
	if !strings.HasPrefix(number, "TS-") {
		t.Fatalf("expected TS- prefix, got %q", number)
	}
	parts := strings.Split(number, "-")
	if len(parts) != 3 || len(parts[2]) != 4 {
		t.Fatalf("unexpected format %q", number)
	}
	if number != strings.ToUpper(number) {
		t.Fatalf("expected uppercase number, got %q", number)
	}
}
