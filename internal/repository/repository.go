package repository

import (
	"context"

	"inventory-dashboard/internal/model"
)

// CategoryRepository defines the data access operations for categories.
type CategoryRepository interface {
	// List retrieves all categories ordered by id.
	List(ctx context.Context) ([]model.Category, error)

	// Insert stores a new category and returns it with its generated id.
	// The name is not validated here.
	Insert(ctx context.Context, name, description string) (*model.Category, error)

	// Delete removes a category by id. The store rejects the delete with a
	// foreign key violation while products still reference it.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the data access operations for products.
type ProductRepository interface {
	// List retrieves all products with their category name, ordered by id.
	List(ctx context.Context) ([]model.Product, error)

	// Insert stores a new product and returns it with its generated id.
	Insert(ctx context.Context, p model.NewProduct) (*model.Product, error)

	// Delete removes a product by id.
	Delete(ctx context.Context, id int64) error
}
