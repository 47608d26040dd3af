package catalog

import (
	"context"

	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

var storeEntity = entity{
	name:       "store",
	conflict:   "Storename already in use, try another",
	referenced: "Make sure you removed all products and categories first",
}

// CreateStore creates a store owned by the caller.
func (s *Service) CreateStore(ctx context.Context, userID string, in model.StoreInput) (*model.Store, error) {
	in.Normalize()
	if userID == "" {
		return nil, newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	st, err := store.CreateStore(ctx, s.DB, userID, in.Name)
	if err != nil {
		return nil, persistErr(storeEntity, err)
	}
	s.changed(ctx, storeEntity, "created", userID, st.ID, st.ID)
	return st, nil
}

// ListStores returns the caller's stores.
func (s *Service) ListStores(ctx context.Context, userID string) ([]model.Store, error) {
	if userID == "" {
		return nil, newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	stores, err := store.ListStores(ctx, s.DB, userID)
	if err != nil {
		return nil, unexpected(err)
	}
	return stores, nil
}

// GetStore returns a store the caller owns. A store owned by someone else is
// Forbidden; an unknown id is NotFound.
func (s *Service) GetStore(ctx context.Context, userID, storeID string) (*model.Store, error) {
	if userID == "" {
		return nil, newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	if storeID == "" {
		return nil, newError(Missing, MsgStoreIDRequired, nil)
	}

	st, err := store.GetStore(ctx, s.DB, storeID)
	if err != nil {
		return nil, unexpected(err)
	}
	if st == nil {
		return nil, newError(NotFound, "Store not found", nil)
	}
	if st.UserID != userID {
		return nil, newError(Forbidden, MsgForbidden, nil)
	}
	return st, nil
}

// UpdateStore renames a store. The update is filtered by id and owner, so a
// store the caller does not own is NotFound.
func (s *Service) UpdateStore(ctx context.Context, userID, storeID string, in model.StoreInput) (*model.Store, error) {
	in.Normalize()
	if userID == "" {
		return nil, newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	if storeID == "" {
		return nil, newError(Missing, MsgStoreIDRequired, nil)
	}

	st, err := store.UpdateStore(ctx, s.DB, storeID, userID, in.Name)
	if err != nil {
		return nil, persistErr(storeEntity, err)
	}
	s.changed(ctx, storeEntity, "updated", userID, storeID, storeID)
	return st, nil
}

// DeleteStore deletes an empty store the caller owns.
func (s *Service) DeleteStore(ctx context.Context, userID, storeID string) (*model.Store, error) {
	if userID == "" {
		return nil, newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	if storeID == "" {
		return nil, newError(Missing, MsgStoreIDRequired, nil)
	}

	st, err := store.DeleteStore(ctx, s.DB, storeID, userID)
	if err != nil {
		return nil, persistErr(storeEntity, err)
	}
	s.changed(ctx, storeEntity, "deleted", userID, storeID, storeID)
	return st, nil
}
