package repository

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// CatalogRepository provides read access to categories and products.
// Stock is mutated only through the order placement transaction.
type CatalogRepository interface {
	Categories(ctx context.Context) ([]model.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	ProductByID(ctx context.Context, id int64) (*model.Product, error)
}
