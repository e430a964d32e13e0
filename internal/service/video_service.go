package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"video-hub/internal/apperror"
	"video-hub/internal/metrics"
	"video-hub/internal/models"
	"video-hub/internal/notify"
	"video-hub/internal/repository"

	"github.com/rs/zerolog"
)

const (
	MinScore = 1
	MaxScore = 5

	// MaxRatingAttempts bounds the read-check-write retries of AddRating
	// when concurrent raters keep invalidating the read version.
	MaxRatingAttempts = 5
)

const (
	MsgVideoSet        = "Video successfully set."
	MsgRatingAdded     = "Rating added successfully"
	MsgDateAfterToday  = "The date can not be after today"
	MsgDateFormat      = "The date must be in yyyy-MM-dd format"
	MsgTitleRequired   = "The title is required"
	MsgEntityNotFound  = "Entity not found"
	MsgSelfVote        = "You can't vote for yourself."
	MsgAlreadyVoted    = "User has already voted."
	MsgScoreRange      = "Score must be between 1 and 5"
	MsgConcurrentWrite = "Concurrent update, try again"
)

// VideoStore is the document store the video service reads and writes.
type VideoStore interface {
	Insert(ctx context.Context, video *models.VideoDocument) error
	FindByID(ctx context.Context, id string) (*models.VideoDocument, error)
	FindAll(ctx context.Context) ([]models.VideoDocument, error)
	ReplaceIfVersion(ctx context.Context, video *models.VideoDocument, expectedVersion int64) error
}

type VideoService struct {
	store    VideoStore
	notifier notify.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewVideoService(store VideoStore, notifier notify.Notifier, logger zerolog.Logger) *VideoService {
	return &VideoService{
		store:    store,
		notifier: notifier,
		logger:   logger.With().Str("component", "video_service").Logger(),
		now:      time.Now,
	}
}

// SetVideo validates and stores a new video slot on behalf of creatorID.
// The day may not lie after today; an empty owner defaults to the creator.
func (s *VideoService) SetVideo(ctx context.Context, creatorID string, req models.VideoRequest) (string, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "", apperror.BadRequest(MsgTitleRequired)
	}

	day, err := time.Parse(models.DayLayout, req.Day)
	if err != nil {
		return "", apperror.BadRequest(MsgDateFormat)
	}
	if day.Format(models.DayLayout) > s.today() {
		return "", apperror.BadRequest(MsgDateAfterToday)
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = creatorID
	}

	video := models.NewVideoDocument(req, creatorID)
	if err := s.store.Insert(ctx, video); err != nil {
		s.logger.Error().Err(err).Str("creator", creatorID).Msg("failed to set video")
		return "", apperror.StoreFailure("Failed to set video", err)
	}

	s.logger.Info().
		Str("video_id", video.ID.Hex()).
		Str("owner", video.UserID).
		Str("creator", creatorID).
		Str("day", video.Day).
		Msg("video set")
	return MsgVideoSet, nil
}

// AddRating records voterID's score for the video and recomputes the average.
//
// The write only succeeds against the version that was read, so two raters
// racing on the same video cannot both pass the duplicate check on stale
// data; the loser re-reads and runs every check again. Existence, self-vote
// and duplicate checks come before the score range check.
func (s *VideoService) AddRating(ctx context.Context, videoID, voterID string, req models.ScoreRequest) (string, error) {
	for attempt := 1; attempt <= MaxRatingAttempts; attempt++ {
		video, err := s.store.FindByID(ctx, videoID)
		if err != nil {
			metrics.IncRating(metrics.RatingError)
			return "", apperror.StoreFailure("Failed to load video", err)
		}
		if video == nil {
			metrics.IncRating(metrics.RatingNotFound)
			return "", apperror.NotFound(MsgEntityNotFound)
		}
		if voterID == video.UserID {
			metrics.IncRating(metrics.RatingSelfVote)
			return "", apperror.InvalidOperation(MsgSelfVote)
		}
		if video.HasVoted(voterID) {
			metrics.IncRating(metrics.RatingDuplicate)
			return "", apperror.InvalidOperation(MsgAlreadyVoted)
		}
		if req.Score < MinScore || req.Score > MaxScore {
			metrics.IncRating(metrics.RatingInvalid)
			return "", apperror.BadRequest(MsgScoreRange)
		}

		readVersion := video.Version
		video.AddRating(models.NewRatingDocument(voterID, req))

		err = s.store.ReplaceIfVersion(ctx, video, readVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.Debug().
				Str("video_id", videoID).
				Int("attempt", attempt).
				Msg("rating lost a concurrent update, retrying")
			continue
		}
		if err != nil {
			metrics.IncRating(metrics.RatingError)
			s.logger.Error().Err(err).Str("video_id", videoID).Msg("failed to store rating")
			return "", apperror.StoreFailure("Failed to add rating", err)
		}

		metrics.IncRating(metrics.RatingAccepted)
		s.logger.Info().
			Str("video_id", videoID).
			Str("voter", voterID).
			Int("score", req.Score).
			Int("average", video.AverageRating).
			Msg("rating added")
		s.notifyOwner(video, req)
		return MsgRatingAdded, nil
	}

	metrics.IncRating(metrics.RatingConflict)
	return "", apperror.Conflict(MsgConcurrentWrite)
}

// GetAll returns every stored video.
func (s *VideoService) GetAll(ctx context.Context) ([]models.VideoResponse, error) {
	videos, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list videos")
		return nil, apperror.StoreFailure("Failed to list videos", err)
	}
	return models.ToResponses(videos), nil
}

// GetVideosForWeek returns the videos of one ISO week, oldest day first.
func (s *VideoService) GetVideosForWeek(ctx context.Context, week, year int) ([]models.VideoResponse, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByWeek(all, week, year, s.logger), nil
}

func (s *VideoService) today() string {
	return s.now().Format(models.DayLayout)
}

func (s *VideoService) notifyOwner(video *models.VideoDocument, req models.ScoreRequest) {
	if s.notifier == nil {
		return
	}
	message := notify.FormatRatingMessage(video.UserID, video.Title, req.Score, req.Text)
	go func() {
		if err := s.notifier.Publish(context.Background(), message); err != nil {
			s.logger.Warn().Err(err).Str("video_id", video.ID.Hex()).Msg("failed to publish rating notification")
		}
	}()
}
