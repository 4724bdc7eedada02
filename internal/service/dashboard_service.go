package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"inventory-dashboard/internal/export"
	"inventory-dashboard/internal/model"

	"github.com/rs/zerolog"
)

// dashboardService implements DashboardService.
type dashboardService struct {
	categories CategoryService
	products   ProductService
	sink       export.Sink
	now        func() time.Time
	logger     zerolog.Logger
}

// NewDashboardService creates a new dashboard service. sink may be nil,
// in which case SaveSnapshot returns model.ErrSnapshotsDisabled.
func NewDashboardService(
	categories CategoryService,
	products ProductService,
	sink export.Sink,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		categories: categories,
		products:   products,
		sink:       sink,
		now:        time.Now,
		logger:     logger.With().Str("service", "dashboard").Logger(),
	}
}

// Load re-reads categories and products and builds the view model.
func (s *dashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Dashboard{
		Categories:    categories,
		Products:      products,
		CategoryNames: CategoryNames(categories),
		TotalValue:    ComputeTotalValue(products),
		Chart:         BuildQuantityChart(products),
	}, nil
}

// OnAddCategory handles the sidebar category form.
func (s *dashboardService) OnAddCategory(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	return s.categories.Create(ctx, in)
}

// OnDeleteCategory handles a category delete button.
func (s *dashboardService) OnDeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// OnAddProduct handles the product form. The category name is resolved
// against a fresh category list; an unknown name rejects the write.
func (s *dashboardService) OnAddProduct(ctx context.Context, form model.ProductForm) (*model.Product, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, model.ErrProductNameRequired
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	categoryID, err := SelectCategoryIDForName(BuildCategoryLookup(categories), form.CategoryName)
	if err != nil {
		s.logger.Warn().
			Str("category_name", form.CategoryName).
			Msg("product form selected an unknown category")
		return nil, err
	}

	return s.products.Create(ctx, model.NewProduct{
		Name:       form.Name,
		Quantity:   form.Quantity,
		Price:      form.Price,
		CategoryID: categoryID,
	})
}

// OnDeleteProduct handles a product delete button.
func (s *dashboardService) OnDeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// WriteReport writes the CSV stock report to w.
func (s *dashboardService) WriteReport(ctx context.Context, w io.Writer) error {
	products, err := s.products.List(ctx)
	if err != nil {
		return err
	}

	return export.WriteCSV(w, products, ComputeTotalValue(products))
}

// SaveSnapshot stores a gzipped stock report and returns its location.
func (s *dashboardService) SaveSnapshot(ctx context.Context) (string, error) {
	if s.sink == nil {
		return "", model.ErrSnapshotsDisabled
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return "", err
	}

	body, err := export.GzipCSV(products, ComputeTotalValue(products))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build snapshot")
		return "", fmt.Errorf("failed to build snapshot: %w", err)
	}

	location, err := s.sink.Put(ctx, export.SnapshotKey(s.now()), body)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store snapshot")
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Info().
		Str("location", location).
		Int("product_count", len(products)).
		Msg("snapshot saved")

	return location, nil
}
