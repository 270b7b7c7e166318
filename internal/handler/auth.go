package handler

import (
	"net/http"

	"github.com/crewline/platform/internal/service"
)

// AuthHandler handles admin setup, login, and logout endpoints.
type AuthHandler struct {
	authSvc *service.AdminAuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Setup handles POST /admin/setup. It creates the first admin account and
// fails once any admin exists.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var input service.SetupInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	result, err := h.authSvc.Setup(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, result)
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	result, err := h.authSvc.Login(r.Context(), input, ClientIP(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

// Logout handles POST /admin/logout. Sessions are stateless tokens, so
// logout always succeeds; the client discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusNoContent, nil)
}
