package api

import (
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/media"
)

// Options configures the API router. Uploader and Limiter are optional.
type Options struct {
	Service     *catalog.Service
	JWTSecret   string
	Uploader    *media.Uploader
	Limiter     *RateLimiter
	CORSOrigins []string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(o Options) http.Handler {
	mux := http.NewServeMux()
	svc := o.Service

	authHandler := &AuthHandler{DB: svc.DB, JWTSecret: o.JWTSecret}
	storesHandler := &StoresHandler{Service: svc}

	authMW := AuthMiddleware(o.JWTSecret, svc.DB)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Stores (owner only).
	mux.Handle("GET /api/stores", authMW(http.HandlerFunc(storesHandler.List)))
	mux.Handle("POST /api/stores", authMW(http.HandlerFunc(storesHandler.Create)))
	mux.Handle("PATCH /api/stores/{storeId}", authMW(http.HandlerFunc(storesHandler.Update)))
	mux.Handle("DELETE /api/stores/{storeId}", authMW(http.HandlerFunc(storesHandler.Delete)))

	// Store-scoped catalog: public reads, owner writes.
	register(mux, authMW, "billboards", billboards(svc))
	register(mux, authMW, "categories", categories(svc))
	register(mux, authMW, "sizes", sizes(svc))
	register(mux, authMW, "colors", colors(svc))
	register(mux, authMW, "products", products(svc))

	if o.Uploader != nil {
		uploadsHandler := &UploadsHandler{Service: svc, Uploader: o.Uploader}
		mux.Handle("POST /api/{storeId}/uploads", authMW(http.HandlerFunc(uploadsHandler.Upload)))
	}

	var h http.Handler = mux
	if o.Limiter != nil {
		h = o.Limiter.Middleware(h)
	}
	return CORS(o.CORSOrigins, h)
}

func register[T, In any](mux *http.ServeMux, authMW func(http.Handler) http.Handler, name string, h *resource[T, In]) {
	base := "/api/{storeId}/" + name
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.Handle("POST "+base, authMW(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH "+base+"/{id}", authMW(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE "+base+"/{id}", authMW(http.HandlerFunc(h.Delete)))
}
