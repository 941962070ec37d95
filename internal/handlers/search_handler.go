package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/services"
)

// SearchHandler handles HTTP requests for catalog search.
type SearchHandler struct {
	searchService *services.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// RegisterRoutes registers the search routes. Both are public.
func (h *SearchHandler) RegisterRoutes(router fiber.Router) {
	search := router.Group("/search")
	search.Get("/", h.HandleSearch)
	search.Get("/suggestions", h.HandleSuggestions)
}

// HandleSearch runs a text search with optional filters, sorting and paging.
// An unrecognized sortBy or sortOrder is rejected rather than silently
// falling back to the defaults.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return fail(c, fiber.StatusBadRequest, "Search query is required")
	}

	sortBy := catalog.SortKey(c.Query("sortBy", string(catalog.SortByName)))
	switch sortBy {
	case catalog.SortByName, catalog.SortByPrice, catalog.SortByCreatedAt:
	default:
		return fail(c, fiber.StatusBadRequest, "sortBy must be one of 'name', 'price', 'createdAt'")
	}

	sortOrder := catalog.SortOrder(c.Query("sortOrder", string(catalog.Ascending)))
	switch sortOrder {
	case catalog.Ascending, catalog.Descending:
	default:
		return fail(c, fiber.StatusBadRequest, "sortOrder must be 'asc' or 'desc'")
	}

	params := services.SearchParams{
		Query:      query,
		CategoryID: c.Query("category"),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}

	var err error
	if params.MinPrice, err = parsePriceQuery(c, "minPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if params.MaxPrice, err = parsePriceQuery(c, "maxPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if params.Page, params.Limit, err = parsePageQuery(c); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	results, pagination, err := h.searchService.Search(params)
	if err != nil {
		h.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return paginated(c, results, pagination)
}

// HandleSuggestions returns the top product and category matches for a query.
func (h *SearchHandler) HandleSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.searchService.Suggestions(c.Query("q"))
	if err != nil {
		h.logger.Error("suggestions failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return success(c, fiber.StatusOK, suggestions, "")
}
