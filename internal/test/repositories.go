package test

import (
	"context"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, phone, name, pinHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[phone]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Phone: phone, Name: name, PINHash: pinHash}
	s.Next++
	s.Users[phone] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByPhone fetches user by phone or returns not found.
func (s *UserRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[phone]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CatalogRepositoryStub serves a fixed catalog.
type CatalogRepositoryStub struct {
	CategoryList []model.Category
	Products     map[int64]*model.Product

	CategoriesFn func(context.Context) ([]model.Category, error)
	ByCategoryFn func(context.Context, int64) ([]model.Product, error)
	ByIDFn       func(context.Context, int64) (*model.Product, error)
}

// Categories lists configured categories.
func (s *CatalogRepositoryStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return s.CategoryList, nil
}

// ProductsByCategory filters configured products by category.
func (s *CatalogRepositoryStub) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if s.ByCategoryFn != nil {
		return s.ByCategoryFn(ctx, categoryID)
	}
	var result []model.Product
	for _, p := range s.Products {
		if p.CategoryID == categoryID && p.Stock > 0 {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ProductByID returns a configured product or not found.
func (s *CatalogRepositoryStub) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	if p, ok := s.Products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CartRepositoryStub keeps cart lines per user in-memory.
type CartRepositoryStub struct {
	Lines map[int64][]model.CartLine

	UpsertFn   func(context.Context, int64, int64, int) error
	ContentsFn func(context.Context, int64) (*model.CartContents, error)
	ClearFn    func(context.Context, int64) error
}

// NewCartRepositoryStub constructs stub cart storage.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Lines: make(map[int64][]model.CartLine)}
}

// UpsertItem accumulates quantity on the matching line.
func (s *CartRepositoryStub) UpsertItem(ctx context.Context, userID, productID int64, quantity int) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, userID, productID, quantity)
	}
	lines := s.Lines[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			s.Lines[userID] = lines
			return nil
		}
	}
	s.Lines[userID] = append(lines, model.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

// Contents returns the stored lines.
func (s *CartRepositoryStub) Contents(ctx context.Context, userID int64) (*model.CartContents, error) {
	if s.ContentsFn != nil {
		return s.ContentsFn(ctx, userID)
	}
	return &model.CartContents{CartID: userID, Lines: s.Lines[userID]}, nil
}

// Clear drops stored lines.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	delete(s.Lines, userID)
	return nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	PlaceFn       func(context.Context, int64, string, model.PaymentType) (*model.Order, error)
	GetByNumberFn func(context.Context, string) (*model.Order, error)
	GetByIDFn     func(context.Context, int64) (*model.Order, error)
	ListByUserFn  func(context.Context, int64) ([]model.Order, error)
	MarkPaidFn    func(context.Context, string) (*model.Order, error)
	CompleteFn    func(context.Context, int64) (*model.Order, error)
	CancelFn      func(context.Context, int64) error

	Orders []model.Order
}

// Place delegates to the override or fabricates a pending order.
func (s *OrderRepositoryStub) Place(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, number, paymentType)
	}
	return &model.Order{ID: 1, Number: number, UserID: userID, Status: model.OrderStatusPending, PaymentType: paymentType}, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// MarkPaid delegates to the override or advances the stored order.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, number string) (*model.Order, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, number)
	}
	for i := range s.Orders {
		if s.Orders[i].Number == number {
			if s.Orders[i].Status == model.OrderStatusPending {
				s.Orders[i].Status = model.OrderStatusPaid
			}
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Complete delegates to the override or advances the stored order.
func (s *OrderRepositoryStub) Complete(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusCompleted
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Cancel delegates to the override or drops the stored order.
func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusCancelled
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ArtifactRepositoryStub stores one artifact per order.
type ArtifactRepositoryStub struct {
	SaveFn    func(context.Context, *model.PickupArtifact) error
	GetFn     func(context.Context, int64) (*model.PickupArtifact, error)
	Artifacts map[int64]*model.PickupArtifact
	SaveCalls int
	LastSaved *model.PickupArtifact
}

// NewArtifactRepositoryStub constructs stub artifact storage.
func NewArtifactRepositoryStub() *ArtifactRepositoryStub {
	return &ArtifactRepositoryStub{Artifacts: make(map[int64]*model.PickupArtifact)}
}

// Save upserts the artifact by order id.
func (s *ArtifactRepositoryStub) Save(ctx context.Context, artifact *model.PickupArtifact) error {
	s.SaveCalls++
	s.LastSaved = artifact
	if s.SaveFn != nil {
		return s.SaveFn(ctx, artifact)
	}
	s.Artifacts[artifact.OrderID] = artifact
	return nil
}

// GetByOrder fetches the stored artifact or returns not found.
func (s *ArtifactRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.PickupArtifact, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	if a, ok := s.Artifacts[orderID]; ok {
		return a, nil
	}
	return nil, domainErrors.ErrNotFound
}
