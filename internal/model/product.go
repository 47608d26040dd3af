package model

import (
	"strings"
	"time"
)

// Product is a sellable catalog row. Category, Size, Color and Images are
// populated by the read paths and omitted on write responses.
type Product struct {
	ID         string    `json:"id" db:"id"`
	StoreID    string    `json:"storeId" db:"store_id"`
	CategoryID string    `json:"categoryId" db:"category_id"`
	SizeID     string    `json:"sizeId" db:"size_id"`
	ColorID    string    `json:"colorId" db:"color_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	IsFeatured bool      `json:"isFeatured" db:"is_featured"`
	IsArchived bool      `json:"isArchived" db:"is_archived"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Images   []Image   `json:"images" db:"-"`
	Category *Category `json:"category,omitempty" db:"-"`
	Size     *Size     `json:"size,omitempty" db:"-"`
	Color    *Color    `json:"color,omitempty" db:"-"`
}

// Image belongs to a product and is deleted with it.
type Image struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type ImageInput struct {
	URL string `json:"url" validate:"required"`
}

type ProductInput struct {
	Name       string       `json:"name" validate:"required"`
	Images     []ImageInput `json:"images" validate:"required,min=1,dive"`
	Price      float64      `json:"price" validate:"required,gt=0"`
	CategoryID string       `json:"categoryId" validate:"required"`
	ColorID    string       `json:"colorId" validate:"required"`
	SizeID     string       `json:"sizeId" validate:"required"`
	IsFeatured bool         `json:"isFeatured"`
	IsArchived bool         `json:"isArchived"`
}

// ProductFilter narrows product listings. Empty fields do not filter.
// Archived products are never listed.
type ProductFilter struct {
	CategoryID string
	ColorID    string
	SizeID     string
	// FeaturedOnly restricts the listing to featured products; false means
	// "featured or not", never "not featured". Only a truthy isFeatured query
	// value sets it, so "?isFeatured=false" lists every product.
	FeaturedOnly bool
}

// IsTruthy reports whether a query parameter value means true.
func IsTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true":
		return true
	}
	return false
}
