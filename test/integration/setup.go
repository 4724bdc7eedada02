package integration

import (
	"context"
	"testing"
	"time"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test store.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Store     config.StoreConfig
}

// SetupTestDB starts a PostgreSQL container and connects to it through the
// same pool and migration path the server uses.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	store := config.StoreConfig{
		URL:             connStr,
		Key:             "testpass",
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
		Migrate:         true,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, store, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Create schema
	if err := database.Migrate(pool, logger); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Store:     store,
	}
}

// SeedInventory inserts two categories and three products and returns the
// category ids by name.
func SeedInventory(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()
	ids := make(map[string]int64)

	for _, name := range []string{"Drinks", "Snacks"} {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO "Kategorie" (name) VALUES ($1) RETURNING id`, name,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		ids[name] = id
	}

	products := []struct {
		name     string
		quantity int
		price    string
		category string
	}{
		{"Water", 40, "1.50", "Drinks"},
		{"Juice", 20, "4.25", "Drinks"},
		{"Chips", 10, "5.00", "Snacks"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO "Produkty" (name, quantity, price, category_id) VALUES ($1, $2, $3::numeric, $4)`,
			p.name, p.quantity, p.price, ids[p.category],
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
	}

	return ids
}

// CleanupDB removes all rows and resets the id sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE "Produkty", "Kategorie" RESTART IDENTITY`)
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}
