package model

import "time"

// Size is a product size option such as "Large" / "L".
type Size struct {
	ID        string    `json:"id" db:"id"`
	StoreID   string    `json:"storeId" db:"store_id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type SizeInput struct {
	Name  string `json:"name" validate:"required,max=30"`
	Value string `json:"value" validate:"required,max=30"`
}

// Color is a product color option; Value is a hex code such as "#ff0000".
type Color struct {
	ID        string    `json:"id" db:"id"`
	StoreID   string    `json:"storeId" db:"store_id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type ColorInput struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required,min=4,hexcolor"`
}
