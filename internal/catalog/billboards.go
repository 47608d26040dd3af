package catalog

import (
	"context"

	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

var billboardEntity = entity{
	name:       "billboard",
	conflict:   "Labelname already in use, try another",
	referenced: "Make sure you removed all categories using this billboard first",
}

// CreateBillboard creates a billboard in a store the caller owns.
func (s *Service) CreateBillboard(ctx context.Context, userID, storeID string, in model.BillboardInput) (*model.Billboard, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	b, err := store.CreateBillboard(ctx, s.DB, storeID, in)
	if err != nil {
		return nil, persistErr(billboardEntity, err)
	}
	s.changed(ctx, billboardEntity, "created", userID, storeID, b.ID)
	return b, nil
}

// GetBillboard returns one billboard; reads are public.
func (s *Service) GetBillboard(ctx context.Context, storeID, id string) (*model.Billboard, error) {
	b, err := store.GetBillboard(ctx, s.DB, storeID, id)
	return found(billboardEntity, storeID, b, err)
}

// ListBillboards returns a store's billboards, newest first.
func (s *Service) ListBillboards(ctx context.Context, storeID string) ([]model.Billboard, error) {
	return cachedList(ctx, s, storeID, "billboards", func() ([]model.Billboard, error) {
		return store.ListBillboards(ctx, s.DB, storeID)
	})
}

// UpdateBillboard replaces a billboard's label and image.
func (s *Service) UpdateBillboard(ctx context.Context, userID, storeID, id string, in model.BillboardInput) (*model.Billboard, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	b, err := store.UpdateBillboard(ctx, s.DB, storeID, id, in)
	if err != nil {
		return nil, persistErr(billboardEntity, err)
	}
	s.changed(ctx, billboardEntity, "updated", userID, storeID, id)
	return b, nil
}

// DeleteBillboard deletes a billboard no category references.
func (s *Service) DeleteBillboard(ctx context.Context, userID, storeID, id string) (*model.Billboard, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	b, err := store.DeleteBillboard(ctx, s.DB, storeID, id)
	if err != nil {
		return nil, persistErr(billboardEntity, err)
	}
	s.changed(ctx, billboardEntity, "deleted", userID, storeID, id)
	return b, nil
}
