package handlers

import (
	"context"
	"net/http"
	"strconv"

	"video-hub/internal/apperror"
	"video-hub/internal/middleware"
	"video-hub/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// VideoService is what the video routes need from the service layer.
type VideoService interface {
	SetVideo(ctx context.Context, creatorID string, req models.VideoRequest) (string, error)
	AddRating(ctx context.Context, videoID, voterID string, req models.ScoreRequest) (string, error)
	GetAll(ctx context.Context) ([]models.VideoResponse, error)
	GetVideosForWeek(ctx context.Context, week, year int) ([]models.VideoResponse, error)
}

type VideoHandler struct {
	videos VideoService
	logger zerolog.Logger
}

func NewVideoHandler(videos VideoService, logger zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		videos: videos,
		logger: logger.With().Str("component", "video_handler").Logger(),
	}
}

// --- POST /api/video ---

func (h *VideoHandler) SetVideo(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req models.VideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	message, err := h.videos.SetVideo(r.Context(), principal.ID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, message)
}

// --- GET /api/video ---

func (h *VideoHandler) GetVideoList(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.GetAll(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// --- POST /api/video/{videoId} ---

func (h *VideoHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req models.ScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	message, err := h.videos.AddRating(r.Context(), chi.URLParam(r, "videoId"), principal.ID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, message)
}

// --- GET /api/by-week/{year}/{week} ---

func (h *VideoHandler) GetVideosForWeek(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, h.logger, apperror.BadRequest("year must be a number between 1 and 9999"))
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 || week > 53 {
		writeError(w, h.logger, apperror.BadRequest("week must be a number between 1 and 53"))
		return
	}

	videos, err := h.videos.GetVideosForWeek(r.Context(), week, year)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
