package catalog

import (
	"context"

	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

var (
	sizeEntity = entity{
		name:       "size",
		referenced: "Make sure you removed all products using this size first",
	}
	colorEntity = entity{
		name:       "color",
		referenced: "Make sure you removed all products using this color first",
	}
)

// CreateSize creates a size in a store the caller owns.
func (s *Service) CreateSize(ctx context.Context, userID, storeID string, in model.SizeInput) (*model.Size, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	v, err := store.CreateSize(ctx, s.DB, storeID, in)
	if err != nil {
		return nil, persistErr(sizeEntity, err)
	}
	s.changed(ctx, sizeEntity, "created", userID, storeID, v.ID)
	return v, nil
}

// GetSize returns one size.
func (s *Service) GetSize(ctx context.Context, storeID, id string) (*model.Size, error) {
	v, err := store.GetSize(ctx, s.DB, storeID, id)
	return found(sizeEntity, storeID, v, err)
}

// ListSizes returns a store's sizes, newest first.
func (s *Service) ListSizes(ctx context.Context, storeID string) ([]model.Size, error) {
	return cachedList(ctx, s, storeID, "sizes", func() ([]model.Size, error) {
		return store.ListSizes(ctx, s.DB, storeID)
	})
}

// UpdateSize replaces a size's name and value.
func (s *Service) UpdateSize(ctx context.Context, userID, storeID, id string, in model.SizeInput) (*model.Size, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	v, err := store.UpdateSize(ctx, s.DB, storeID, id, in)
	if err != nil {
		return nil, persistErr(sizeEntity, err)
	}
	s.changed(ctx, sizeEntity, "updated", userID, storeID, id)
	return v, nil
}

// DeleteSize deletes a size no product references.
func (s *Service) DeleteSize(ctx context.Context, userID, storeID, id string) (*model.Size, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	v, err := store.DeleteSize(ctx, s.DB, storeID, id)
	if err != nil {
		return nil, persistErr(sizeEntity, err)
	}
	s.changed(ctx, sizeEntity, "deleted", userID, storeID, id)
	return v, nil
}

// CreateColor creates a color in a store the caller owns.
func (s *Service) CreateColor(ctx context.Context, userID, storeID string, in model.ColorInput) (*model.Color, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	v, err := store.CreateColor(ctx, s.DB, storeID, in)
	if err != nil {
		return nil, persistErr(colorEntity, err)
	}
	s.changed(ctx, colorEntity, "created", userID, storeID, v.ID)
	return v, nil
}

// GetColor returns one color.
func (s *Service) GetColor(ctx context.Context, storeID, id string) (*model.Color, error) {
	v, err := store.GetColor(ctx, s.DB, storeID, id)
	return found(colorEntity, storeID, v, err)
}

// ListColors returns a store's colors, newest first.
func (s *Service) ListColors(ctx context.Context, storeID string) ([]model.Color, error) {
	return cachedList(ctx, s, storeID, "colors", func() ([]model.Color, error) {
		return store.ListColors(ctx, s.DB, storeID)
	})
}

// UpdateColor replaces a color's name and hex value.
func (s *Service) UpdateColor(ctx context.Context, userID, storeID, id string, in model.ColorInput) (*model.Color, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	v, err := store.UpdateColor(ctx, s.DB, storeID, id, in)
	if err != nil {
		return nil, persistErr(colorEntity, err)
	}
	s.changed(ctx, colorEntity, "updated", userID, storeID, id)
	return v, nil
}

// DeleteColor deletes a color no product references.
func (s *Service) DeleteColor(ctx context.Context, userID, storeID, id string) (*model.Color, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	v, err := store.DeleteColor(ctx, s.DB, storeID, id)
	if err != nil {
		return nil, persistErr(colorEntity, err)
	}
	s.changed(ctx, colorEntity, "deleted", userID, storeID, id)
	return v, nil
}
