package model

import "github.com/shopspring/decimal"

// Category groups products in the catalog.
type Category struct {
	ID   int64
	Name string
}

// Product describes a catalog item with live stock.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}
