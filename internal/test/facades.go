package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
	"github.com/tinoe0404/eTuckshop-sub000/internal/worker"
)

// ChatFacadeStub simulates the application surface driven by the conversation
// state machine. Every operation is a function override; nil means not
// expected in the scenario.
type ChatFacadeStub struct {
	CustomerByPhoneFn      func(context.Context, string) (*model.User, error)
	RegisterCustomerFn     func(context.Context, string, string, string) (*model.User, error)
	AuthenticateCustomerFn func(context.Context, string, string) (*model.User, error)
	CategoriesFn           func(context.Context) ([]model.Category, error)
	ProductsByCategoryFn   func(context.Context, int64) ([]model.Product, error)
	ProductFn              func(context.Context, int64) (*model.Product, error)
	AddToCartFn            func(context.Context, int64, int64, int) error
	CartContentsFn         func(context.Context, int64) (*model.CartContents, error)
	CheckoutFn             func(context.Context, int64, model.PaymentType) (*usecase.CheckoutResult, error)
	OrdersByUserFn         func(context.Context, int64) ([]model.Order, error)
	OrderByNumberFn        func(context.Context, string) (*model.Order, error)
}

func (s *ChatFacadeStub) CustomerByPhone(ctx context.Context, phone string) (*model.User, error) {
	return s.CustomerByPhoneFn(ctx, phone)
}

func (s *ChatFacadeStub) RegisterCustomer(ctx context.Context, phone, name, pin string) (*model.User, error) {
	return s.RegisterCustomerFn(ctx, phone, name, pin)
}

func (s *ChatFacadeStub) AuthenticateCustomer(ctx context.Context, phone, pin string) (*model.User, error) {
	return s.AuthenticateCustomerFn(ctx, phone, pin)
}

func (s *ChatFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	return s.CategoriesFn(ctx)
}

func (s *ChatFacadeStub) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return s.ProductsByCategoryFn(ctx, categoryID)
}

func (s *ChatFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	return s.ProductFn(ctx, id)
}

func (s *ChatFacadeStub) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	return s.AddToCartFn(ctx, userID, productID, quantity)
}

func (s *ChatFacadeStub) CartContents(ctx context.Context, userID int64) (*model.CartContents, error) {
	return s.CartContentsFn(ctx, userID)
}

func (s *ChatFacadeStub) Checkout(ctx context.Context, userID int64, paymentType model.PaymentType) (*usecase.CheckoutResult, error) {
	return s.CheckoutFn(ctx, userID, paymentType)
}

func (s *ChatFacadeStub) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.OrdersByUserFn(ctx, userID)
}

func (s *ChatFacadeStub) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	return s.OrderByNumberFn(ctx, number)
}

// PaymentLinkerStub fabricates payment links.
type PaymentLinkerStub struct {
	CreateLinkFn func(context.Context, decimal.Decimal, string, string) (string, error)
}

// CreateLink delegates to the override or returns a fixed link.
func (s PaymentLinkerStub) CreateLink(ctx context.Context, amount decimal.Decimal, reference, payer string) (string, error) {
	if s.CreateLinkFn != nil {
		return s.CreateLinkFn(ctx, amount, reference, payer)
	}
	return "https://pay.example/" + reference, nil
}

// SenderStub records outbound messages.
type SenderStub struct {
	mu   sync.Mutex
	Sent []SentMessage
	Err  error
}

// SentMessage is one recorded delivery.
type SentMessage struct {
	To   string
	Text string
}

// Send appends the message to the record.
func (s *SenderStub) Send(ctx context.Context, to, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentMessage{To: to, Text: text})
	return nil
}

// Messages returns a snapshot of recorded deliveries.
func (s *SenderStub) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.Sent...)
}

// PipelineStub handles inbound messages via override.
type PipelineStub struct {
	HandleFn func(context.Context, string, string, string) string
}

// HandleInboundMessage delegates to the override or echoes the text.
func (s PipelineStub) HandleInboundMessage(ctx context.Context, sender, text, messageID string) string {
	if s.HandleFn != nil {
		return s.HandleFn(ctx, sender, text, messageID)
	}
	return "echo: " + text
}

// EnqueuerStub records enqueued messages for webhook tests.
type EnqueuerStub struct {
	mu       sync.Mutex
	Enqueued []worker.Message
	Reject   bool
}

// Enqueue records the message unless the stub is set to reject.
func (s *EnqueuerStub) Enqueue(msg worker.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Reject {
		return false
	}
	s.Enqueued = append(s.Enqueued, msg)
	return true
}

// Queued returns a snapshot of recorded messages.
func (s *EnqueuerStub) Queued() []worker.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]worker.Message(nil), s.Enqueued...)
}
