package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/cache"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/repository"
)

const (
	categoriesCacheKey = "catalog:categories"
	catalogCacheTTL    = 5 * time.Minute
	productListTTL     = time.Minute
)

func productListCacheKey(categoryID int64) string {
	return fmt.Sprintf("catalog:products:%d", categoryID)
}

// CatalogUseCase provides catalog reads. Lists go through the best-effort
// cache; single-product reads are always fresh because stock decisions depend
// on them.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
	cache   *cache.Cache
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository, c *cache.Cache) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog, cache: c}
}

// Categories lists catalog categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if u.cache.GetJSON(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}
	categories, err := u.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.PutJSON(ctx, categoriesCacheKey, categories, catalogCacheTTL)
	return categories, nil
}

// ProductsByCategory lists products in a category. The short TTL bounds how
// stale the displayed stock can get between checkouts.
func (u *CatalogUseCase) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	var cached []model.Product
	key := productListCacheKey(categoryID)
	if u.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}
	products, err := u.catalog.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	u.cache.PutJSON(ctx, key, products, productListTTL)
	return products, nil
}

// Product fetches a single product with live stock, bypassing the cache.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.catalog.ProductByID(ctx, id)
}
