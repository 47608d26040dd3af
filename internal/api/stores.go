package api

import (
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/model"
)

// StoresHandler handles the store lifecycle endpoints.
type StoresHandler struct {
	Service *catalog.Service
}

// List handles GET /api/stores.
func (h *StoresHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Service.ListStores(r.Context(), userID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	if stores == nil {
		stores = []model.Store{}
	}
	jsonResponse(w, http.StatusOK, stores)
}

// Create handles POST /api/stores.
func (h *StoresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.StoreInput
	if err := decodeJSON(r, &in); err != nil {
		invalidBody(w)
		return
	}

	st, err := h.Service.CreateStore(r.Context(), userID(r), in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// Update handles PATCH /api/stores/{storeId}.
func (h *StoresHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.StoreInput
	if err := decodeJSON(r, &in); err != nil {
		invalidBody(w)
		return
	}

	st, err := h.Service.UpdateStore(r.Context(), userID(r), r.PathValue("storeId"), in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// Delete handles DELETE /api/stores/{storeId}.
func (h *StoresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.DeleteStore(r.Context(), userID(r), r.PathValue("storeId"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}
