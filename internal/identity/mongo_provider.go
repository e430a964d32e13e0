package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"video-hub/internal/models"
	"video-hub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password the provider accepts.
const MinPasswordLength = 6

// AccountStore is the persistence MongoProvider needs.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// MongoProvider is a self-hosted identity provider: accounts live in the
// document store, passwords are bcrypt hashes, sessions are JWTs.
type MongoProvider struct {
	accounts AccountStore
	tokens   *TokenService
	cost     int
}

func NewMongoProvider(accounts AccountStore, tokens *TokenService) *MongoProvider {
	return &MongoProvider{
		accounts: accounts,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
	}
}

func (p *MongoProvider) CreateUser(ctx context.Context, req CreateRequest) (*UserRecord, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("identity: hashing password: %w", err)
	}

	account := &models.Account{
		Email:         email,
		PasswordHash:  string(hash),
		EmailVerified: req.EmailVerified,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return toRecord(account), nil
}

func (p *MongoProvider) SignIn(ctx context.Context, email, password string) (string, *UserRecord, error) {
	account, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if account == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	record := toRecord(account)
	token, err := p.tokens.Generate(*record)
	if err != nil {
		return "", nil, err
	}
	return token, record, nil
}

func (p *MongoProvider) VerifyToken(_ context.Context, raw string) (Principal, error) {
	return p.tokens.Validate(raw)
}

// EnsureUser creates the account unless one with that email already exists.
func (p *MongoProvider) EnsureUser(ctx context.Context, req CreateRequest) (*UserRecord, bool, error) {
	existing, err := p.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return toRecord(existing), false, nil
	}
	record, err := p.CreateUser(ctx, req)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

func toRecord(account *models.Account) *UserRecord {
	return &UserRecord{
		UID:           account.ID.Hex(),
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
	}
}
