package repositories

import (
	"strconv"
	"sync"
	"time"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Records live in a slice so listings keep creation order, and IDs are
// assigned sequentially. The mutex keeps concurrent requests from corrupting
// the slice; no further isolation is promised.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewMemoryProductRepository creates an empty in-memory product store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{nextID: 1}
}

// GetAll returns the products matching the filter, in creation order.
func (r *MemoryProductRepository) GetAll(filter catalog.Filter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filter.Apply(r.products), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// GetBySKU returns a product by its unique SKU.
func (r *MemoryProductRepository) GetBySKU(sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].SKU == sku {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new product, assigning a sequential ID and timestamps.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = strconv.Itoa(r.nextID)
	}
	r.nextID++

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = product.CreatedAt

	r.products = append(r.products, *product)
	return nil
}

// Update replaces an existing product and refreshes its UpdatedAt.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == product.ID {
			product.UpdatedAt = time.Now()
			r.products[i] = *product
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CountByCategory returns the number of products in the given category.
func (r *MemoryProductRepository) CountByCategory(categoryID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.products {
		if r.products[i].CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}
