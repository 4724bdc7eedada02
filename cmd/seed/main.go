package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/database"
	"inventory-dashboard/internal/model"
	"inventory-dashboard/internal/repository"
	"inventory-dashboard/internal/service"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	name     string
	quantity int
	price    string
	category string
}

var sampleCategories = []model.NewCategory{
	{Name: "Beverages", Description: "Water, juices and soft drinks"},
	{Name: "Snacks", Description: "Chips, nuts and bars"},
	{Name: "Household"},
}

var sampleProducts = []sampleProduct{
	{name: "Mineral water 1.5l", quantity: 120, price: "2.49", category: "Beverages"},
	{name: "Orange juice 1l", quantity: 45, price: "6.99", category: "Beverages"},
	{name: "Salted peanuts", quantity: 60, price: "4.29", category: "Snacks"},
	{name: "Potato chips", quantity: 80, price: "5.49", category: "Snacks"},
	{name: "Dish soap", quantity: 25, price: "8.99", category: "Household"},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads a small sample inventory. Categories and products whose names
// already exist are left alone, so running it twice is harmless.
func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool, logger); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}

	categories := service.NewCategoryService(repository.NewCategoryRepository(pool, logger), logger)
	products := service.NewProductService(repository.NewProductRepository(pool, logger), logger)

	existing, err := categories.List(ctx)
	if err != nil {
		return err
	}
	lookup := service.BuildCategoryLookup(existing)

	for _, c := range sampleCategories {
		if _, ok := lookup[c.Name]; ok {
			continue
		}
		created, err := categories.Create(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
		lookup[created.Name] = created.ID
	}

	current, err := products.List(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(current))
	for _, p := range current {
		seen[p.Name] = true
	}

	added := 0
	for _, p := range sampleProducts {
		if seen[p.name] {
			continue
		}
		categoryID, err := service.SelectCategoryIDForName(lookup, p.category)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
		if _, err := products.Create(ctx, model.NewProduct{
			Name:       p.name,
			Quantity:   p.quantity,
			Price:      decimal.RequireFromString(p.price),
			CategoryID: categoryID,
		}); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
		added++
	}

	logger.Info().
		Int("categories", len(lookup)).
		Int("products_added", added).
		Msg("sample inventory loaded")

	return nil
}
