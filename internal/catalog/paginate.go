package catalog

import "github.com/Udaypole/Market-System/internal/models"

// Pagination bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Paginate slices an ordered collection into the 1-based page of the given
// size and reports the pagination metadata for the whole collection. Page and
// limit are normalized: page < 1 becomes 1, limit is clamped to [1, MaxLimit]
// with DefaultLimit for non-positive values. A page past the end yields an
// empty slice, never an error.
func Paginate[T any](items []T, page, limit int) ([]T, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return items[start:end], models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
