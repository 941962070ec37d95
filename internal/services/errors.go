package services

import "errors"

// Domain error conditions. Handlers map these to HTTP statuses; anything else
// becomes a generic 500.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSKUTaken            = errors.New("product with this sku already exists")
	ErrSlugTaken           = errors.New("category with this slug already exists")
	ErrCategoryHasProducts = errors.New("cannot delete category with existing products")
)
