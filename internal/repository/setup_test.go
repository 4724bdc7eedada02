package repository

import (
	"context"
	"testing"
	"time"

	"inventory-dashboard/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the migrated schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping store test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	require.NoError(t, database.Migrate(pool, zerolog.Nop()))

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedCategory inserts a category directly and returns its id.
func seedCategory(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO "Kategorie" (name, description) VALUES ($1, $2) RETURNING id`,
		name, name+" description",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedProduct inserts a product directly and returns its id.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name string, quantity int, price string, categoryID int64) int64 {
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO "Produkty" (name, quantity, price, category_id) VALUES ($1, $2, $3::numeric, $4) RETURNING id`,
		name, quantity, price, categoryID,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
