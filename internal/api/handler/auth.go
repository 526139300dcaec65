// internal/api/handler/auth.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preilly17/VacationSync-sub009/internal/api/middleware"
	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/service"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth   service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// Register handles the register request.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the login request, setting the session cookie on success.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	user, session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, h.logger, http.StatusOK, user)
}

// Logout handles the logout request, clearing the session.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.CookieName)
	if err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			respondWithError(w, h.logger, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles the current-user request.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.CookieName)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidSession)
		return
	}

	var user *domain.User
	user, err = h.auth.ResolveSession(r.Context(), cookie.Value)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, user)
}
