package catalog

import (
	"context"
	"fmt"

	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

var productEntity = entity{
	name:   "product",
	badRef: "Category, size or color does not exist in this store",
}

// CreateProduct creates a product with its images.
func (s *Service) CreateProduct(ctx context.Context, userID, storeID string, in model.ProductInput) (*model.Product, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	p, err := store.CreateProduct(ctx, s.DB, storeID, in)
	if err != nil {
		return nil, persistErr(productEntity, err)
	}
	s.changed(ctx, productEntity, "created", userID, storeID, p.ID)
	return p, nil
}

// GetProduct returns one product with its relations, archived or not.
func (s *Service) GetProduct(ctx context.Context, storeID, id string) (*model.Product, error) {
	p, err := store.GetProduct(ctx, s.DB, storeID, id)
	return found(productEntity, storeID, p, err)
}

// ListProducts is the public listing: archived products are never included.
func (s *Service) ListProducts(ctx context.Context, storeID string, f model.ProductFilter) ([]model.Product, error) {
	key := fmt.Sprintf("products:c=%s:co=%s:s=%s:f=%t", f.CategoryID, f.ColorID, f.SizeID, f.FeaturedOnly)
	return cachedList(ctx, s, storeID, key, func() ([]model.Product, error) {
		return store.ListProducts(ctx, s.DB, storeID, f)
	})
}

// ListAllProducts lists archived products too and is limited to the owner.
func (s *Service) ListAllProducts(ctx context.Context, userID, storeID string) ([]model.Product, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	products, err := store.ListAllProducts(ctx, s.DB, storeID)
	if err != nil {
		return nil, unexpected(err)
	}
	return products, nil
}

// UpdateProduct replaces a product's fields and images.
func (s *Service) UpdateProduct(ctx context.Context, userID, storeID, id string, in model.ProductInput) (*model.Product, error) {
	in.Normalize()
	if err := s.authorize(ctx, userID, storeID, in); err != nil {
		return nil, err
	}
	p, err := store.UpdateProduct(ctx, s.DB, storeID, id, in)
	if err != nil {
		return nil, persistErr(productEntity, err)
	}
	s.changed(ctx, productEntity, "updated", userID, storeID, id)
	return p, nil
}

// DeleteProduct deletes a product and its images.
func (s *Service) DeleteProduct(ctx context.Context, userID, storeID, id string) (*model.Product, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	p, err := store.DeleteProduct(ctx, s.DB, storeID, id)
	if err != nil {
		return nil, persistErr(productEntity, err)
	}
	s.changed(ctx, productEntity, "deleted", userID, storeID, id)
	return p, nil
}
