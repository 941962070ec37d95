package services

import (
	"strings"
	"unicode/utf8"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/repositories"
)

// Suggestion caps: top matches returned by Suggestions.
const (
	maxProductSuggestions  = 5
	maxCategorySuggestions = 3
	minSuggestionQueryLen  = 2
)

// SearchParams describes one search request: the text query plus optional
// narrowing, ordering and paging.
type SearchParams struct {
	Query      string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     catalog.SortKey
	SortOrder  catalog.SortOrder
	Page       int
	Limit      int
}

// SearchService runs text search over the catalog: filter, sort, paginate,
// and the typeahead suggestions endpoint.
type SearchService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *SearchService {
	return &SearchService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Search filters products by the query and optional criteria, orders them by
// the requested key and direction, and returns the requested page joined with
// category references.
func (s *SearchService) Search(params SearchParams) ([]models.ProductWithCategory, models.Pagination, error) {
	filter := catalog.Filter{
		Search:     params.Query,
		CategoryID: params.CategoryID,
		MinPrice:   params.MinPrice,
		MaxPrice:   params.MaxPrice,
	}

	products, err := s.productRepo.GetAll(filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = catalog.SortByName
	}
	sortOrder := params.SortOrder
	if sortOrder == "" {
		sortOrder = catalog.Ascending
	}
	catalog.Sort(products, sortBy, sortOrder)

	pageItems, pagination := catalog.Paginate(products, params.Page, params.Limit)
	withCategories, err := attachCategories(pageItems, s.categoryRepo)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return withCategories, pagination, nil
}

// Suggestions returns the top product and category name matches for a query.
// Queries shorter than two characters yield empty lists.
func (s *SearchService) Suggestions(query string) (*models.SearchSuggestions, error) {
	suggestions := &models.SearchSuggestions{
		Products:   []models.ProductSuggestion{},
		Categories: []models.CategorySuggestion{},
	}
	if utf8.RuneCountInString(query) < minSuggestionQueryLen {
		return suggestions, nil
	}

	products, err := s.productRepo.GetAll(catalog.Filter{Search: query})
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if len(suggestions.Products) == maxProductSuggestions {
			break
		}
		suggestions.Products = append(suggestions.Products, models.ProductSuggestion{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
		})
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(query)
	for _, c := range categories {
		if len(suggestions.Categories) == maxCategorySuggestions {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			suggestions.Categories = append(suggestions.Categories, models.CategorySuggestion{
				ID:   c.ID,
				Name: c.Name,
				Slug: c.Slug,
			})
		}
	}

	return suggestions, nil
}
