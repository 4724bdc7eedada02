package repository

import (
	"context"
	"fmt"

	"inventory-dashboard/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// List retrieves all categories ordered by id.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(description, '')
		FROM %s
		ORDER BY id
	`, TableCategories.Ident())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, newStoreError("list", TableCategories, err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, newStoreError("list", TableCategories, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, newStoreError("list", TableCategories, err)
	}

	return categories, nil
}

// Insert stores a new category and returns it with its generated id.
func (r *categoryRepository) Insert(ctx context.Context, name, description string) (*model.Category, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, COALESCE(description, '')
	`, TableCategories.Ident())

	var c model.Category
	err := r.pool.QueryRow(ctx, query, name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to insert category")
		return nil, newStoreError("insert", TableCategories, err)
	}

	r.logger.Debug().
		Int64("category_id", c.ID).
		Str("name", c.Name).
		Msg("category inserted")

	return &c, nil
}

// Delete removes a category by id.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	removed, err := deleteByID(ctx, r.pool, TableCategories, id)
	if err != nil {
		r.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return err
	}

	if removed == 0 {
		r.logger.Debug().Int64("category_id", id).Msg("category not found")
		return model.ErrCategoryNotFound
	}

	r.logger.Debug().Int64("category_id", id).Msg("category deleted")

	return nil
}
