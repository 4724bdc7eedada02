package service

import (
	"context"
	"io"

	"inventory-dashboard/internal/model"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves all categories.
	List(ctx context.Context) ([]model.Category, error)

	// Create validates the name and stores a new category.
	Create(ctx context.Context, in model.NewCategory) (*model.Category, error)

	// Delete removes a category. It fails with model.ErrCategoryInUse while
	// products still reference the category.
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves all products with their category name.
	List(ctx context.Context) ([]model.Product, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, in model.NewProduct) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// Summary computes the total stock value and quantity chart.
	Summary(ctx context.Context) (*model.Summary, error)
}

// DashboardService builds the dashboard view model and handles the
// dashboard's commands. Every call reads fresh state from the store.
type DashboardService interface {
	// Load re-reads categories and products and builds the view model.
	Load(ctx context.Context) (*model.Dashboard, error)

	OnAddCategory(ctx context.Context, in model.NewCategory) (*model.Category, error)
	OnDeleteCategory(ctx context.Context, id int64) error
	OnAddProduct(ctx context.Context, form model.ProductForm) (*model.Product, error)
	OnDeleteProduct(ctx context.Context, id int64) error

	// WriteReport writes the CSV stock report to w.
	WriteReport(ctx context.Context, w io.Writer) error

	// SaveSnapshot stores a gzipped stock report and returns its location.
	SaveSnapshot(ctx context.Context) (string, error)
}
