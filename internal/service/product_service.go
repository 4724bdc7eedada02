package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-dashboard/internal/model"
	"inventory-dashboard/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products with their category name.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Create validates and stores a new product. A category that vanished
// before the insert is reported as model.ErrCategoryNotFound.
func (s *productService) Create(ctx context.Context, in model.NewProduct) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	// The store keeps two decimal places.
	in.Price = in.Price.Round(2)

	if err := validateNewProduct(in); err != nil {
		s.logger.Warn().Err(err).Str("name", in.Name).Msg("invalid product")
		return nil, err
	}

	product, err := s.productRepo.Insert(ctx, in)
	if err != nil {
		var storeErr *model.StoreError
		if errors.As(err, &storeErr) && storeErr.ForeignKeyViolation() {
			s.logger.Warn().Int64("category_id", in.CategoryID).Msg("product references unknown category")
			return nil, model.ErrCategoryNotFound
		}

		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("category_id", product.CategoryID).
		Msg("product created")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	err := s.productRepo.Delete(ctx, id)
	if err == nil {
		s.logger.Info().Int64("product_id", id).Msg("product deleted")
		return nil
	}

	if errors.Is(err, model.ErrProductNotFound) {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return err
	}

	s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
	return fmt.Errorf("failed to delete product: %w", err)
}

// Summary computes the total stock value and quantity chart.
func (s *productService) Summary(ctx context.Context) (*model.Summary, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Summary{
		ProductCount: len(products),
		TotalValue:   ComputeTotalValue(products),
		Chart:        BuildQuantityChart(products),
	}, nil
}
