package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "sitereport/internal/errors"
	"sitereport/internal/model"
	"sitereport/internal/repository"
)

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

// Login authenticates by username, or by email when identifier looks like one
// and no username matches, and returns a bearer token.
func (s *authService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, identifier)
	if errors.Is(err, apperrors.ErrNotFound) && strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.Active {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
