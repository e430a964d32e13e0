// Package identity verifies bearer tokens and provisions accounts. The rest of
// the service only sees the Provider interface, so the account store behind
// it can be swapped for a hosted identity service.
package identity

import (
	"context"
	"errors"
)

var (
	ErrEmailExists        = errors.New("the user with the provided email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrInvalidEmail       = errors.New("email address is malformed")
	ErrInvalidToken       = errors.New("invalid token")
)

// Principal is the authenticated caller.
type Principal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"emailVerified"`
}

type CreateRequest struct {
	Email         string
	Password      string
	EmailVerified bool
}

// UserRecord is what the provider reports back about an account.
type UserRecord struct {
	UID           string
	Email         string
	EmailVerified bool
}

// TokenVerifier turns a raw bearer token into a Principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (Principal, error)
}

type Provider interface {
	TokenVerifier
	CreateUser(ctx context.Context, req CreateRequest) (*UserRecord, error)
	SignIn(ctx context.Context, email, password string) (string, *UserRecord, error)
}
