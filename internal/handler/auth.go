package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login resolves the demo identity, sets the session cookie and redirects to
// the app root.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, token, err := h.authService.Login()
	if err != nil {
		slog.Error("login failed", "error", err)
		respondError(w, r, err)
		return
	}

	h.authService.SetSessionCookie(w, token, time.Now().Add(h.authService.SessionExpiry()))
	slog.Info("user logged in", "user_id", user.ID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Me returns the session user, or 401 when no session exists.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
		return
	}
	respondJSON(w, http.StatusOK, user)
}
