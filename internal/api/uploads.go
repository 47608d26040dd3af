package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/media"
)

// MaxUploadSize limits image uploads.
const MaxUploadSize = 10 << 20

// UploadsHandler stores images for billboards and products.
type UploadsHandler struct {
	Service  *catalog.Service
	Uploader *media.Uploader
}

// Upload handles POST /api/{storeId}/uploads with a multipart "file" field.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if err := h.Service.Authorize(r.Context(), userID(r), storeID); err != nil {
		serviceError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, err := h.Uploader.Upload(r.Context(), storeID, file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupported) {
			jsonError(w, http.StatusUnprocessableEntity, "image must be JPEG, PNG, GIF or WebP")
			return
		}
		slog.Error("storing upload", "store", storeID, "error", err)
		jsonError(w, http.StatusInternalServerError, catalog.MsgUnexpected)
		return
	}

	slog.Info("image uploaded", "user", userID(r), "store", storeID, "url", url)
	jsonResponse(w, http.StatusOK, map[string]string{"url": url})
}
