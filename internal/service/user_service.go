package service

import (
	"context"
	"strings"

	"video-hub/internal/apperror"
	"video-hub/internal/identity"
	"video-hub/internal/models"
	"video-hub/internal/notify"

	"github.com/rs/zerolog"
)

const MsgPasswordTooShort = "Password must be at least 6 characters long"

// AccountCreator is the slice of the identity provider that provisioning uses.
type AccountCreator interface {
	CreateUser(ctx context.Context, req identity.CreateRequest) (*identity.UserRecord, error)
}

type UserService struct {
	provider AccountCreator
	mailer   notify.Mailer
	logger   zerolog.Logger
}

func NewUserService(provider AccountCreator, mailer notify.Mailer, logger zerolog.Logger) *UserService {
	return &UserService{
		provider: provider,
		mailer:   mailer,
		logger:   logger.With().Str("component", "user_service").Logger(),
	}
}

// CreateUser provisions an account with a verified email. The password goes
// to the provider only; the returned user never carries it.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Email and password are required")
	}
	if len(password) < identity.MinPasswordLength {
		return nil, apperror.BadRequest(MsgPasswordTooShort)
	}

	record, err := s.provider.CreateUser(ctx, identity.CreateRequest{
		Email:         email,
		Password:      password,
		EmailVerified: true,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to create user")
		return nil, apperror.CreationFailed("Failed to create user", err)
	}

	s.logger.Info().Str("user_id", record.UID).Str("email", record.Email).Msg("user created")
	s.sendWelcome(record.Email)

	return &models.User{
		ID:            record.UID,
		Email:         record.Email,
		EmailVerified: record.EmailVerified,
	}, nil
}

func (s *UserService) sendWelcome(email string) {
	if s.mailer == nil {
		return
	}
	subject, html := notify.WelcomeEmail(email)
	go func() {
		if err := s.mailer.Send(context.Background(), email, subject, html); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to send welcome email")
		}
	}()
}
