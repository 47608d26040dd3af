package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/katalog/internal/auth"
	"github.com/erazemk/katalog/internal/store"
)

const invalidLogin = "Invalid username or password."

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in", Toast: popFlash(w, r)})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your username and password.",
		})
		return
	}

	user, err := store.GetUserByUsername(r.Context(), s.Service.DB, username)
	if err != nil {
		slog.Error("looking up user", "error", err)
	}
	if err != nil || !auth.CheckPassword(user, password) {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{Title: "Sign in", Error: invalidLogin})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Username)
	if err != nil {
		slog.Error("generating token", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Sign in",
			Error: "Could not sign in, try again later.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	slog.Info("user logged in", "user", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The token is revoked so copies of the cookie
// stop working too.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(tokenCookie); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil {
			if err := store.RevokeToken(r.Context(), s.Service.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("revoking token", "error", err)
			}
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
