package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/katalog/internal/auth"
	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/model"
	webembed "github.com/erazemk/katalog/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"inc":   func(n int) int { return n + 1 },
		"price": formatPrice,
	}
}

func formatPrice(p float64) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}

var pages = []string{
	"login.html",
	"home.html",
	"overview.html",
	"settings.html",
	"list.html",
	"billboard_form.html",
	"category_form.html",
	"size_form.html",
	"color_form.html",
	"product_form.html",
}

// LoadTemplates parses every page together with the shared layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()
	ts := &Templates{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(FuncMap()).ParseFS(tfs, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}
	return ts, nil
}

// Render writes a page with status 200.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes the page into a buffer first so a template failure
// becomes a 500 instead of a truncated page.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		slog.Error("unknown template", "template", name)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title  string
	User   *auth.Claims
	Store  *model.Store
	Stores []model.Store
	Toast  *Toast
	Error  string
}

// Confirm is the delete confirmation dialog.
type Confirm struct {
	Action  string
	Cancel  string
	Loading bool
}

// Server holds all dependencies for page handlers.
type Server struct {
	Service   *catalog.Service
	Templates *Templates
	JWTSecret string
	// APIBase prefixes the storefront API URL shown on the overview page.
	APIBase string
}
