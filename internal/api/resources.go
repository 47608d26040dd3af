package api

import (
	"context"
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/model"
)

// resource serves the five endpoints of a store-scoped entity. Reads are
// public; mutations run behind AuthMiddleware.
type resource[T, In any] struct {
	create func(ctx context.Context, userID, storeID string, in In) (*T, error)
	get    func(ctx context.Context, storeID, id string) (*T, error)
	list   func(r *http.Request, storeID string) ([]T, error)
	update func(ctx context.Context, userID, storeID, id string, in In) (*T, error)
	remove func(ctx context.Context, userID, storeID, id string) (*T, error)
}

// List handles GET /api/{storeId}/{resource}.
func (h *resource[T, In]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.list(r, r.PathValue("storeId"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/{storeId}/{resource}/{id}.
func (h *resource[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.get(r.Context(), r.PathValue("storeId"), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/{storeId}/{resource}.
func (h *resource[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decodeJSON(r, &in); err != nil {
		invalidBody(w)
		return
	}

	item, err := h.create(r.Context(), userID(r), r.PathValue("storeId"), in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/{storeId}/{resource}/{id}.
func (h *resource[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decodeJSON(r, &in); err != nil {
		invalidBody(w)
		return
	}

	item, err := h.update(r.Context(), userID(r), r.PathValue("storeId"), r.PathValue("id"), in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/{storeId}/{resource}/{id}.
func (h *resource[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.remove(r.Context(), userID(r), r.PathValue("storeId"), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// listAll adapts a plain service list to the resource signature.
func listAll[T any](fn func(ctx context.Context, storeID string) ([]T, error)) func(*http.Request, string) ([]T, error) {
	return func(r *http.Request, storeID string) ([]T, error) {
		return fn(r.Context(), storeID)
	}
}

func billboards(svc *catalog.Service) *resource[model.Billboard, model.BillboardInput] {
	return &resource[model.Billboard, model.BillboardInput]{
		create: svc.CreateBillboard,
		get:    svc.GetBillboard,
		list:   listAll(svc.ListBillboards),
		update: svc.UpdateBillboard,
		remove: svc.DeleteBillboard,
	}
}

func categories(svc *catalog.Service) *resource[model.Category, model.CategoryInput] {
	return &resource[model.Category, model.CategoryInput]{
		create: svc.CreateCategory,
		get:    svc.GetCategory,
		list:   listAll(svc.ListCategories),
		update: svc.UpdateCategory,
		remove: svc.DeleteCategory,
	}
}

func sizes(svc *catalog.Service) *resource[model.Size, model.SizeInput] {
	return &resource[model.Size, model.SizeInput]{
		create: svc.CreateSize,
		get:    svc.GetSize,
		list:   listAll(svc.ListSizes),
		update: svc.UpdateSize,
		remove: svc.DeleteSize,
	}
}

func colors(svc *catalog.Service) *resource[model.Color, model.ColorInput] {
	return &resource[model.Color, model.ColorInput]{
		create: svc.CreateColor,
		get:    svc.GetColor,
		list:   listAll(svc.ListColors),
		update: svc.UpdateColor,
		remove: svc.DeleteColor,
	}
}

// products lists with the storefront query filters: categoryId, colorId,
// sizeId and isFeatured.
func products(svc *catalog.Service) *resource[model.Product, model.ProductInput] {
	return &resource[model.Product, model.ProductInput]{
		create: svc.CreateProduct,
		get:    svc.GetProduct,
		list: func(r *http.Request, storeID string) ([]model.Product, error) {
			q := r.URL.Query()
			return svc.ListProducts(r.Context(), storeID, model.ProductFilter{
				CategoryID:   q.Get("categoryId"),
				ColorID:      q.Get("colorId"),
				SizeID:       q.Get("sizeId"),
				FeaturedOnly: model.IsTruthy(q.Get("isFeatured")),
			})
		},
		update: svc.UpdateProduct,
		remove: svc.DeleteProduct,
	}
}
