package models

import "time"

// Product statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product represents a product in the catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"required,min=1,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	CategoryID  string    `json:"categoryId" gorm:"index;type:varchar(36)" validate:"required"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty,uri"`
	Images      []string  `json:"images" gorm:"serializer:json" validate:"omitempty,dive,uri"`
	Inventory   int       `json:"inventory" validate:"gte=0"`
	SKU         string    `json:"sku" gorm:"uniqueIndex;type:varchar(64)" validate:"required,min=1"`
	Status      string    `json:"status" gorm:"type:varchar(16)" validate:"omitempty,oneof=active inactive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRef is the slim category view attached to product responses.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductWithCategory is a product composed with its category reference.
// Category is null when the product points at a category that no longer exists.
type ProductWithCategory struct {
	Product
	Category *CategoryRef `json:"category"`
}

// ProductUpdate carries a partial product update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=1,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,min=1"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,uri"`
	Images      []string `json:"images" validate:"omitempty,dive,uri"`
	Inventory   *int     `json:"inventory" validate:"omitempty,gte=0"`
	SKU         *string  `json:"sku" validate:"omitempty,min=1"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}
