package model

import "time"

// Store is a tenant. Every other catalog row belongs to exactly one store.
type Store struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// StoreInput is the body of store create and rename requests.
type StoreInput struct {
	Name string `json:"name" validate:"required,max=30"`
}
