package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Udaypole/Market-System/internal/models"
)

// success writes the uniform envelope for a successful response.
func success(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// fail writes the uniform envelope for a failed response.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// paginated writes a list response with pagination metadata.
func paginated(c *fiber.Ctx, data any, pagination models.Pagination) error {
	return c.JSON(models.PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// validationFailed converts validator errors into a 400 with per-field details.
func validationFailed(c *fiber.Ctx, err error) error {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			details[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(models.APIResponse{
		Success: false,
		Error:   "Validation failed",
		Details: details,
	})
}
