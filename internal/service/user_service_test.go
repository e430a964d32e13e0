package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"video-hub/internal/apperror"
	"video-hub/internal/identity"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	got    identity.CreateRequest
	record *identity.UserRecord
	err    error
}

func (s *stubProvider) CreateUser(_ context.Context, req identity.CreateRequest) (*identity.UserRecord, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	to   []string
	sent chan struct{}
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	m.to = append(m.to, to)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return nil
}

func TestCreateUser_ForcesVerifiedEmail(t *testing.T) {
	provider := &stubProvider{record: &identity.UserRecord{UID: "uid-1", Email: "new@user.com", EmailVerified: true}}
	svc := NewUserService(provider, nil, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), " new@user.com ", "secret-pass")
	require.NoError(t, err)

	assert.Equal(t, identity.CreateRequest{Email: "new@user.com", Password: "secret-pass", EmailVerified: true}, provider.got)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, "new@user.com", user.Email)
	assert.True(t, user.EmailVerified)
	assert.Empty(t, user.Password)
}

func TestCreateUser_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: identity.ErrEmailExists}
	svc := NewUserService(provider, nil, zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), "dup@user.com", "secret-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrCreationFailed)
	assert.ErrorIs(t, err, identity.ErrEmailExists)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to create user: the user with the provided email already exists", appErr.Message)
}

func TestCreateUser_MissingFields(t *testing.T) {
	svc := NewUserService(&stubProvider{}, nil, zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), "", "secret-pass")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.CreateUser(context.Background(), "a@user.com", "")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateUser_ShortPasswordIsBadRequest(t *testing.T) {
	provider := &stubProvider{record: &identity.UserRecord{UID: "uid-1"}}
	svc := NewUserService(provider, nil, zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), "a@user.com", "12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.NotErrorIs(t, err, apperror.ErrCreationFailed)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, MsgPasswordTooShort, appErr.Message)
	assert.Empty(t, provider.got.Email, "provider must not be called")

	_, err = svc.CreateUser(context.Background(), "a@user.com", "123456")
	assert.NoError(t, err)
}

func TestCreateUser_SendsWelcomeEmail(t *testing.T) {
	provider := &stubProvider{record: &identity.UserRecord{UID: "uid-1", Email: "new@user.com", EmailVerified: true}}
	mailer := &recordingMailer{sent: make(chan struct{}, 1)}
	svc := NewUserService(provider, mailer, zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), "new@user.com", "secret-pass")
	require.NoError(t, err)

	select {
	case <-mailer.sent:
	case <-time.After(time.Second):
		t.Fatal("welcome email was not sent")
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, []string{"new@user.com"}, mailer.to)
}
