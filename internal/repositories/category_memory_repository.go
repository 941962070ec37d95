package repositories

import (
	"strconv"
	"sync"
	"time"

	"github.com/Udaypole/Market-System/internal/models"
)

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
	nextID     int
}

// NewMemoryCategoryRepository creates an empty in-memory category store.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{nextID: 1}
}

// GetAll returns all categories in creation order.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// GetBySlug returns a category by its unique slug.
func (r *MemoryCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].Slug == slug {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new category, assigning a sequential ID and timestamps.
func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = strconv.Itoa(r.nextID)
	}
	r.nextID++

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = category.CreatedAt

	r.categories = append(r.categories, *category)
	return nil
}

// Update replaces an existing category and refreshes its UpdatedAt.
func (r *MemoryCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == category.ID {
			category.UpdatedAt = time.Now()
			r.categories[i] = *category
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a category by its ID.
func (r *MemoryCategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
