package repository

import (
	"context"
	"fmt"

	"inventory-dashboard/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves all products with their category name, ordered by id.
// Products whose category row is missing get model.NoCategoryName.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.quantity, p.price, p.category_id, COALESCE(c.name, $1)
		FROM %s p
		LEFT JOIN %s c ON c.id = p.category_id
		ORDER BY p.id
	`, TableProducts.Ident(), TableCategories.Ident())

	rows, err := r.pool.Query(ctx, query, model.NoCategoryName)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, newStoreError("list", TableProducts, err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CategoryID, &p.CategoryName)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, newStoreError("list", TableProducts, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, newStoreError("list", TableProducts, err)
	}

	return products, nil
}

// Insert stores a new product and returns it with its generated id.
// CategoryName is left empty; it is only populated by List.
func (r *productRepository) Insert(ctx context.Context, np model.NewProduct) (*model.Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, quantity, price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, quantity, price, category_id
	`, TableProducts.Ident())

	var p model.Product
	err := r.pool.QueryRow(ctx, query, np.Name, np.Quantity, np.Price, np.CategoryID).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CategoryID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("name", np.Name).
			Int64("category_id", np.CategoryID).
			Msg("failed to insert product")
		return nil, newStoreError("insert", TableProducts, err)
	}

	r.logger.Debug().
		Int64("product_id", p.ID).
		Int64("category_id", p.CategoryID).
		Msg("product inserted")

	return &p, nil
}

// Delete removes a product by id.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	removed, err := deleteByID(ctx, r.pool, TableProducts, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}

	if removed == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted")

	return nil
}
