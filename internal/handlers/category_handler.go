package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        newValidator(),
		logger:          logger,
	}
}

// RegisterRoutes registers the category routes. Listing and detail are public;
// the mutation routes run behind the given middleware chain (auth + admin).
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, adminOnly ...fiber.Handler) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleList)
	categories.Get("/:id", h.HandleGet)

	admin := categories.Group("", adminOnly...)
	admin.Post("/", h.HandleCreate)
	admin.Put("/:id", h.HandleUpdate)
	admin.Delete("/:id", h.HandleDelete)
}

// HandleList returns all categories with their product counts.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.categoryService.List()
	if err != nil {
		h.logger.Error("category listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return success(c, fiber.StatusOK, categories, "")
}

// HandleGet returns a category with its product count and preview.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")

	category, err := h.categoryService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error("category lookup failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, category, "")
}

// HandleCreate creates a new category. Admin only.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// ID and timestamps are server-managed; a client-supplied id could
	// collide with an existing record.
	category.ID = ""
	category.CreatedAt = time.Time{}
	category.UpdatedAt = time.Time{}
	if err := h.validate.Struct(category); err != nil {
		return validationFailed(c, err)
	}

	if err := h.categoryService.Create(&category); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("category creation failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusCreated, category, "Category created successfully")
}

// HandleUpdate applies a partial update to a category. Admin only.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var update models.CategoryUpdate
	if err := c.BodyParser(&update); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(update); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.categoryService.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrSlugTaken):
			return fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("category update failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, category, "Category updated successfully")
}

// HandleDelete removes a category. Deleting a category that still has
// products is a policy error, not a cascade. Admin only.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.categoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrCategoryHasProducts):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("category deletion failed", zap.String("id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return success(c, fiber.StatusOK, nil, "Category deleted successfully")
}
