package service

import (
	"strings"

	"inventory-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// ValidateCategoryName reports whether name is non-empty after trimming.
func ValidateCategoryName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// BuildCategoryLookup maps category names to ids. When two categories share
// a name the later one wins.
func BuildCategoryLookup(categories []model.Category) map[string]int64 {
	lookup := make(map[string]int64, len(categories))
	for _, c := range categories {
		lookup[c.Name] = c.ID
	}
	return lookup
}

// CategoryNames returns the distinct category names in first-seen order,
// i.e. the options offered by the product form.
func CategoryNames(categories []model.Category) []string {
	seen := make(map[string]struct{}, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}

// SelectCategoryIDForName resolves a category name through lookup.
func SelectCategoryIDForName(lookup map[string]int64, name string) (int64, error) {
	id, ok := lookup[name]
	if !ok {
		return 0, model.ErrCategoryNotFound
	}
	return id, nil
}

// ComputeTotalValue sums price × quantity over products.
func ComputeTotalValue(products []model.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Value())
	}
	return total
}

// BuildQuantityChart returns one bar per product, scaled against the
// largest quantity.
func BuildQuantityChart(products []model.Product) []model.ChartBar {
	maxQuantity := 0
	for _, p := range products {
		if p.Quantity > maxQuantity {
			maxQuantity = p.Quantity
		}
	}

	bars := make([]model.ChartBar, 0, len(products))
	for _, p := range products {
		bar := model.ChartBar{Label: p.Name, Quantity: p.Quantity}
		if maxQuantity > 0 {
			bar.Percent = float64(p.Quantity) * 100 / float64(maxQuantity)
		}
		bars = append(bars, bar)
	}
	return bars
}
