// Package repositories defines the data-access interfaces for the marketplace
// and provides two implementations per entity: an in-memory store (the
// default) and a GORM-backed store for a persistent database. The filter,
// sort and paginate layers above never care which one is wired in.
package repositories

import (
	"errors"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// ProductRepository defines the interface for product data access.
// GetAll applies the filter; ordering and pagination happen above it.
type ProductRepository interface {
	GetAll(filter catalog.Filter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	CountByCategory(categoryID string) (int, error)
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}
