package models

import "time"

// Category represents a product category. Slug is the unique URL-safe identifier.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"required,min=1,max=500"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryWithCount is a category composed with the number of products in it.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"productCount"`
}

// CategoryDetail is the single-category view: count plus a short product preview.
type CategoryDetail struct {
	Category
	ProductCount int       `json:"productCount"`
	Products     []Product `json:"products"`
}

// CategoryUpdate carries a partial category update. Nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
	Slug        *string `json:"slug" validate:"omitempty,slug"`
}
