package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/auth"
	"github.com/erazemk/katalog/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

const (
	tokenCookie = "token"
	flashCookie = "flash"
)

// CookieAuthMiddleware validates the JWT cookie, checks revocation and adds
// the claims to the context. Anonymous requests are sent to the login page.
func CookieAuthMiddleware(secret string, db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokenCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			claims, err := auth.ValidateToken(secret, cookie.Value)
			if err != nil {
				clearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
			if err != nil {
				slog.Error("failed to check token revocation", "error", err)
			}
			if err != nil || revoked {
				clearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWebClaims retrieves the JWT claims from web context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

func webUserID(r *http.Request) string {
	if c := GetWebClaims(r.Context()); c != nil {
		return c.UserID()
	}
	return ""
}

// Toast is a one-shot notification shown on the next rendered page.
type Toast struct {
	Message string
	Error   bool
}

// setFlash stores a toast for the page the client is redirected to.
func setFlash(w http.ResponseWriter, t Toast) {
	kind := "s"
	if t.Error {
		kind = "e"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    kind + ":" + url.QueryEscape(t.Message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending toast, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) *Toast {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	kind, raw, ok := strings.Cut(cookie.Value, ":")
	if !ok {
		return nil
	}
	msg, err := url.QueryUnescape(raw)
	if err != nil || msg == "" {
		return nil
	}
	return &Toast{Message: msg, Error: kind == "e"}
}
