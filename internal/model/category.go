package model

import "time"

type Category struct {
	ID          string     `json:"id" db:"id"`
	StoreID     string     `json:"storeId" db:"store_id"`
	BillboardID string     `json:"billboardId" db:"billboard_id"`
	Name        string     `json:"name" db:"name"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	Billboard   *Billboard `json:"billboard,omitempty" db:"-"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=30"`
	BillboardID string `json:"billboardId" validate:"required"`
}
