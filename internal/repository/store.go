package repository

import (
	"context"
	"errors"
	"fmt"

	"inventory-dashboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Table names a table in the store.
type Table string

const (
	TableCategories Table = "Kategorie"
	TableProducts   Table = "Produkty"
)

// Ident returns the table name quoted for use in SQL.
func (t Table) Ident() string {
	return pgx.Identifier{string(t)}.Sanitize()
}

// newStoreError wraps err as a *model.StoreError, keeping the SQLSTATE
// when the store reported one.
func newStoreError(op string, table Table, err error) error {
	storeErr := &model.StoreError{Op: op, Table: string(table), Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		storeErr.Code = pgErr.Code
	}

	return storeErr
}

// deleteByID removes one row by id from table.
// It returns the number of rows removed.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table Table, id int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table.Ident())

	tag, err := pool.Exec(ctx, query, id)
	if err != nil {
		return 0, newStoreError("delete", table, err)
	}

	return tag.RowsAffected(), nil
}
