package web

import (
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	webembed "github.com/erazemk/katalog/web"
)

// NewRouter creates the dashboard router with all page routes registered.
func NewRouter(svc *catalog.Service, jwtSecret, apiBase string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Service:   svc,
		Templates: templates,
		JWTSecret: jwtSecret,
		APIBase:   apiBase,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, svc.DB)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Store setup and settings.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Home)))
	mux.Handle("POST /stores", cookieAuth(http.HandlerFunc(s.StoreCreateSubmit)))
	mux.Handle("GET /stores/{storeId}", cookieAuth(http.HandlerFunc(s.OverviewPage)))
	mux.Handle("GET /stores/{storeId}/settings", cookieAuth(http.HandlerFunc(s.SettingsPage)))
	mux.Handle("POST /stores/{storeId}/settings", cookieAuth(http.HandlerFunc(s.SettingsSubmit)))
	mux.Handle("GET /stores/{storeId}/delete", cookieAuth(http.HandlerFunc(s.StoreDeletePage)))
	mux.Handle("POST /stores/{storeId}/delete", cookieAuth(http.HandlerFunc(s.StoreDeleteSubmit)))

	// Catalog forms.
	billboardForm(s).register(mux, cookieAuth)
	categoryForm(s).register(mux, cookieAuth)
	sizeForm(s).register(mux, cookieAuth)
	colorForm(s).register(mux, cookieAuth)
	productForm(s).register(mux, cookieAuth)

	return mux, nil
}
