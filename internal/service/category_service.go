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

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves all categories.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// Create validates the name and stores a new category. The stored name is
// trimmed; nothing reaches the store when the name is blank.
func (s *categoryService) Create(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	if !ValidateCategoryName(in.Name) {
		s.logger.Warn().Msg("category name is empty")
		return nil, model.ErrCategoryNameRequired
	}

	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)

	category, err := s.categoryRepo.Insert(ctx, name, description)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	return category, nil
}

// Delete removes a category, rewriting a foreign key rejection into
// model.ErrCategoryInUse.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	err := s.categoryRepo.Delete(ctx, id)
	if err == nil {
		s.logger.Info().Int64("category_id", id).Msg("category deleted")
		return nil
	}

	var storeErr *model.StoreError
	if errors.As(err, &storeErr) && storeErr.ForeignKeyViolation() {
		s.logger.Warn().Int64("category_id", id).Msg("category still assigned to products")
		return model.ErrCategoryInUse
	}

	if errors.Is(err, model.ErrCategoryNotFound) {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		return err
	}

	s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
	return fmt.Errorf("failed to delete category: %w", err)
}
