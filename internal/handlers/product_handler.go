package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       newValidator(),
		logger:         logger,
	}
}

// RegisterRoutes registers the product routes. Listing and detail are public;
// the mutation routes run behind the given middleware chain (auth + admin).
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminOnly ...fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)

	admin := products.Group("", adminOnly...)
	admin.Post("/", h.HandleCreate)
	admin.Put("/:id", h.HandleUpdate)
	admin.Delete("/:id", h.HandleDelete)
}

// HandleList returns a filtered, paginated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := catalog.Filter{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
	}
	if filter.Status != "" && filter.Status != models.StatusActive && filter.Status != models.StatusInactive {
		return fail(c, fiber.StatusBadRequest, "status must be 'active' or 'inactive'")
	}

	var err error
	if filter.MinPrice, err = parsePriceQuery(c, "minPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.MaxPrice, err = parsePriceQuery(c, "maxPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	page, limit, err := parsePageQuery(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	productsPage, pagination, err := h.productService.List(filter, page, limit)
	if err != nil {
		h.logger.Error("product listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return paginated(c, productsPage, pagination)
}

// HandleGet returns a single product with its category.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.productService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error("product lookup failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, product, "")
}

// HandleCreate creates a new product. Admin only.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// ID and timestamps are server-managed; a client-supplied id could
	// collide with an existing record.
	product.ID = ""
	product.CreatedAt = time.Time{}
	product.UpdatedAt = time.Time{}
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.productService.Create(&product); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrSKUTaken):
			return fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("product creation failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusCreated, product, "Product created successfully")
}

// HandleUpdate applies a partial update to a product. Admin only.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(update); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.productService.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrCategoryNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrSKUTaken):
			return fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("product update failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, product, "Product updated successfully")
}

// HandleDelete removes a product. Admin only.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.productService.Delete(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error("product deletion failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, nil, "Product deleted successfully")
}

// parsePriceQuery reads an optional positive price bound from the query string.
func parsePriceQuery(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("%s must be a positive number", name)
	}
	return &value, nil
}

// parsePageQuery reads page and limit with defaults and bounds.
func parsePageQuery(c *fiber.Ctx) (page, limit int, err error) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", catalog.DefaultLimit)
	if page < 1 {
		return 0, 0, fmt.Errorf("page must be a positive integer")
	}
	if limit < 1 || limit > catalog.MaxLimit {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d", catalog.MaxLimit)
	}
	return page, limit, nil
}
