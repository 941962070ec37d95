package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/repositories"
	"github.com/Udaypole/Market-System/pkg/rabbitmq"
)

// Number of products included in a category detail as a preview.
const categoryPreviewSize = 5

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	mqClient     *rabbitmq.Client
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService. mqClient may be nil, in
// which case catalog events are skipped.
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	mqClient *rabbitmq.Client,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		mqClient:     mqClient,
		logger:       logger,
	}
}

// List returns all categories, each with its product count.
func (s *CategoryService) List() ([]models.CategoryWithCount, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]models.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		count, err := s.productRepo.CountByCategory(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CategoryWithCount{Category: c, ProductCount: count})
	}
	return out, nil
}

// Get returns a category with its product count and a short product preview.
func (s *CategoryService) Get(id string) (*models.CategoryDetail, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	products, err := s.productRepo.GetAll(catalog.Filter{CategoryID: id})
	if err != nil {
		return nil, err
	}

	preview := products
	if len(preview) > categoryPreviewSize {
		preview = preview[:categoryPreviewSize]
	}

	return &models.CategoryDetail{
		Category:     *category,
		ProductCount: len(products),
		Products:     preview,
	}, nil
}

// Create stores a new category after checking slug uniqueness and publishes a
// category.created event.
func (s *CategoryService) Create(category *models.Category) error {
	if _, err := s.categoryRepo.GetBySlug(category.Slug); err == nil {
		return ErrSlugTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.publishEvent("category.created", category.ID, category)
	return nil
}

// Update applies a partial update to an existing category. Changing the slug
// re-checks uniqueness. Publishes a category.updated event.
func (s *CategoryService) Update(id string, update models.CategoryUpdate) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if update.Slug != nil && *update.Slug != category.Slug {
		if _, err := s.categoryRepo.GetBySlug(*update.Slug); err == nil {
			return nil, ErrSlugTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		category.Slug = *update.Slug
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.publishEvent("category.updated", category.ID, category)
	return category, nil
}

// Delete removes a category. Categories that still have products are
// policy-blocked with ErrCategoryHasProducts; nothing cascades.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.publishEvent("category.deleted", id, nil)
	return nil
}

func (s *CategoryService) publishEvent(kind, entityID string, payload any) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishCatalogEvent(kind, entityID, payload); err != nil {
		s.logger.Warn("failed to publish catalog event",
			zap.String("kind", kind),
			zap.String("entityId", entityID),
			zap.Error(err),
		)
	}
}
