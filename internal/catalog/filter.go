// Package catalog holds the pure product-collection engine: filtering,
// sorting and pagination. Nothing here touches storage; repositories and
// services share these building blocks.
package catalog

import (
	"strings"

	"github.com/Udaypole/Market-System/internal/models"
)

// Filter is a conjunction of optional product predicates. A zero-value field
// means the predicate is absent and matches everything.
type Filter struct {
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Status     string
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.CategoryID == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.Search == "" && f.Status == ""
}

// Matches reports whether the product satisfies all present predicates.
// The search predicate is a case-insensitive substring match against the
// product name or description.
func (f Filter) Matches(p models.Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	return true
}

// Apply returns the subsequence of products matching the filter, preserving
// input order. An empty filter returns a copy of the full collection.
func (f Filter) Apply(products []models.Product) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
