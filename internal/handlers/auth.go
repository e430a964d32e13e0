package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"video-hub/internal/apperror"
	"video-hub/internal/identity"
	"video-hub/internal/models"
	"video-hub/internal/ratelimit"

	"github.com/rs/zerolog"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, *identity.UserRecord, error)
}

type AuthHandler struct {
	auth    Authenticator
	limiter ratelimit.Limiter
	logger  zerolog.Logger
}

// NewAuthHandler builds the login handler. A nil limiter disables throttling.
func NewAuthHandler(auth Authenticator, limiter ratelimit.Limiter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		limiter: limiter,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// --- POST /auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, h.logger, apperror.BadRequest("email and password are required"))
		return
	}

	if h.limiter != nil {
		allowed, retryAfter, err := h.limiter.Allow(r.Context(), email)
		if err != nil {
			// Fail open: a Redis outage should not lock everyone out.
			h.logger.Warn().Err(err).Msg("login rate limiter unavailable")
		} else if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeError(w, h.logger, apperror.RateLimited("too many login attempts, please try again later"))
			return
		}
	}

	token, record, err := h.auth.SignIn(r.Context(), email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		h.logger.Info().Str("email", email).Msg("login rejected")
		writeError(w, h.logger, apperror.Unauthorized("invalid email or password"))
		return
	}
	if err != nil {
		writeError(w, h.logger, apperror.StoreFailure("Failed to sign in", err))
		return
	}

	h.logger.Info().Str("user_id", record.UID).Msg("login succeeded")
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User: models.User{
			ID:            record.UID,
			Email:         record.Email,
			EmailVerified: record.EmailVerified,
		},
	})
}
