package handlers

import (
	"context"
	"net/http"

	"video-hub/internal/middleware"
	"video-hub/internal/models"

	"github.com/rs/zerolog"
)

type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
}

type UserHandler struct {
	users  UserService
	logger zerolog.Logger
}

func NewUserHandler(users UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.With().Str("component", "user_handler").Logger(),
	}
}

// --- GET /api/user ---

func (h *UserHandler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

// --- POST /api/register ---

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.User
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
