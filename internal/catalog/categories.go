package catalog

import (
	"context"

	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

var categoryEntity = entity{
	name:       "category",
	conflict:   "Category name already in use, try another",
	referenced: "Make sure you removed all products using this category first",
	badRef:     "Billboard does not exist in this store",
}

// CreateCategory creates a category under one of the store's billboards.
func (s *Service) CreateCategory(ctx context.Context, userID, storeID string, in model.CategoryInput) (*model.Category, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	c, err := store.CreateCategory(ctx, s.DB, storeID, in)
	if err != nil {
		return nil, persistErr(categoryEntity, err)
	}
	s.changed(ctx, categoryEntity, "created", userID, storeID, c.ID)
	return c, nil
}

// GetCategory returns one category with its billboard.
func (s *Service) GetCategory(ctx context.Context, storeID, id string) (*model.Category, error) {
	c, err := store.GetCategory(ctx, s.DB, storeID, id)
	return found(categoryEntity, storeID, c, err)
}

// ListCategories returns a store's categories with their billboards.
func (s *Service) ListCategories(ctx context.Context, storeID string) ([]model.Category, error) {
	return cachedList(ctx, s, storeID, "categories", func() ([]model.Category, error) {
		return store.ListCategories(ctx, s.DB, storeID)
	})
}

// UpdateCategory replaces a category's name and billboard.
func (s *Service) UpdateCategory(ctx context.Context, userID, storeID, id string, in model.CategoryInput) (*model.Category, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	c, err := store.UpdateCategory(ctx, s.DB, storeID, id, in)
	if err != nil {
		return nil, persistErr(categoryEntity, err)
	}
	s.changed(ctx, categoryEntity, "updated", userID, storeID, id)
	return c, nil
}

// DeleteCategory deletes a category no product references.
func (s *Service) DeleteCategory(ctx context.Context, userID, storeID, id string) (*model.Category, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	c, err := store.DeleteCategory(ctx, s.DB, storeID, id)
	if err != nil {
		return nil, persistErr(categoryEntity, err)
	}
	s.changed(ctx, categoryEntity, "deleted", userID, storeID, id)
	return c, nil
}
