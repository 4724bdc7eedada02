package model

import "github.com/shopspring/decimal"

// NoCategoryName is shown in place of a category name when a product row
// comes back without its joined category.
const NoCategoryName = "none"

// Product is a stocked item belonging to exactly one category.
// CategoryName is read through a join and is never stored.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CategoryID   int64           `json:"categoryId" db:"category_id"`
	CategoryName string          `json:"categoryName" db:"category_name"`
}

// Value returns price × quantity for this product.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// NewProduct is the validated input for inserting a product.
type NewProduct struct {
	Name       string          `json:"name" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	Price      decimal.Decimal `json:"price" validate:"gte=0,lt=10000000000"`
	CategoryID int64           `json:"categoryId" validate:"gt=0"`
}

// ProductForm is the dashboard input for a new product. The category is
// chosen by name and resolved against the current category list.
type ProductForm struct {
	Name         string
	Quantity     int
	Price        decimal.Decimal
	CategoryName string
}
