package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/middleware"
	"github.com/TicketXOS/CRM-sub001/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	loginLimit  *middleware.LoginRateLimiter
}

func NewAuthHandler(authService *service.AuthService, loginLimit *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		loginLimit:  loginLimit,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimit.Handler).Post("/login", h.Login)

	return r
}

// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}

// Me returns the authenticated user. Mounted behind the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not authenticated"))
		return
	}
	writeSuccess(w, user)
}
