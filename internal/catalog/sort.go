package catalog

import (
	"sort"
	"strings"

	"github.com/Udaypole/Market-System/internal/models"
)

// SortKey selects the product field to order by.
type SortKey string

// SortOrder selects the direction.
type SortOrder string

const (
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByCreatedAt SortKey = "createdAt"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort orders products in place by the given key and direction. The sort is
// stable, so ties keep their incoming relative order. Name comparison is
// case-insensitive. An unrecognized key sorts by name; callers that want to
// reject unknown keys must validate before calling.
func Sort(products []models.Product, key SortKey, order SortOrder) {
	less := lessFunc(key)
	sort.SliceStable(products, func(i, j int) bool {
		if order == Descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func lessFunc(key SortKey) func(a, b models.Product) bool {
	switch key {
	case SortByPrice:
		return func(a, b models.Product) bool { return a.Price < b.Price }
	case SortByCreatedAt:
		return func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}
