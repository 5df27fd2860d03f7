package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/cache"
	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/repository"
)

const (
	// MaxLineQuantity bounds a single add-to-cart, matching the chat prompt.
	MaxLineQuantity = 10

	cartCacheTTL = time.Minute
)

func cartCacheKey(userID int64) string {
	return fmt.Sprintf("cart:summary:%d", userID)
}

// CartUseCase manages the per-customer cart. Stock is only advisory here; the
// binding check happens inside the checkout transaction.
type CartUseCase struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	cache   *cache.Cache
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, catalog repository.CatalogRepository, c *cache.Cache) *CartUseCase {
	return &CartUseCase{carts: carts, catalog: catalog, cache: c}
}

// AddItem adds quantity of a product to the customer's cart.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return domainErrors.ErrInvalidQuantity
	}

	product, err := u.catalog.ProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return domainErrors.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
	}

	if err := u.carts.UpsertItem(ctx, userID, productID, quantity); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, cartCacheKey(userID))
	return nil
}

// Contents loads the cart with current product data.
func (u *CartUseCase) Contents(ctx context.Context, userID int64) (*model.CartContents, error) {
	var cached model.CartContents
	key := cartCacheKey(userID)
	if u.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}
	contents, err := u.carts.Contents(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.cache.PutJSON(ctx, key, contents, cartCacheTTL)
	return contents, nil
}

// Clear empties the customer's cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	if err := u.carts.Clear(ctx, userID); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, cartCacheKey(userID))
	return nil
}
