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

// ProductService handles business logic related to products.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	mqClient     *rabbitmq.Client
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case catalog events are skipped.
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	mqClient *rabbitmq.Client,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mqClient:     mqClient,
		logger:       logger,
	}
}

// List returns the page of products matching the filter, each joined with its
// category reference, plus pagination metadata over the whole filtered set.
func (s *ProductService) List(filter catalog.Filter, page, limit int) ([]models.ProductWithCategory, models.Pagination, error) {
	products, err := s.productRepo.GetAll(filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	pageItems, pagination := catalog.Paginate(products, page, limit)
	withCategories, err := attachCategories(pageItems, s.categoryRepo)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return withCategories, pagination, nil
}

// Get returns a single product joined with its category reference.
func (s *ProductService) Get(id string) (*models.ProductWithCategory, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	joined, err := attachCategories([]models.Product{*product}, s.categoryRepo)
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Create validates referential integrity and SKU uniqueness, stores the
// product and publishes a product.created event.
func (s *ProductService) Create(product *models.Product) error {
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if _, err := s.productRepo.GetBySKU(product.SKU); err == nil {
		return ErrSKUTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if product.Status == "" {
		product.Status = models.StatusActive
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.productRepo.Create(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.publishEvent("product.created", product.ID, product)
	return nil
}

// Update applies a partial update to an existing product and publishes a
// product.updated event. Changing the category re-checks that it exists.
func (s *ProductService) Update(id string, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if update.CategoryID != nil && *update.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(*update.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = *update.CategoryID
	}
	if update.SKU != nil && *update.SKU != product.SKU {
		if _, err := s.productRepo.GetBySKU(*update.SKU); err == nil {
			return nil, ErrSKUTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		product.SKU = *update.SKU
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.Images != nil {
		product.Images = update.Images
	}
	if update.Inventory != nil {
		product.Inventory = *update.Inventory
	}
	if update.Status != nil {
		product.Status = *update.Status
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publishEvent("product.updated", product.ID, product)
	return product, nil
}

// Delete removes a product and publishes a product.deleted event.
func (s *ProductService) Delete(id string) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishEvent("product.deleted", id, nil)
	return nil
}

func (s *ProductService) publishEvent(kind, entityID string, payload any) {
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

// attachCategories joins each product with a slim reference to its category.
// A dangling category id yields a nil reference rather than an error.
func attachCategories(products []models.Product, categoryRepo repositories.CategoryRepository) ([]models.ProductWithCategory, error) {
	out := make([]models.ProductWithCategory, 0, len(products))
	for _, p := range products {
		var ref *models.CategoryRef
		category, err := categoryRepo.GetByID(p.CategoryID)
		if err == nil {
			ref = &models.CategoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		out = append(out, models.ProductWithCategory{Product: p, Category: ref})
	}
	return out, nil
}
