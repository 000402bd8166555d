package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
)

// ErrEmailRequired is returned when a token payload has no email claim.
var ErrEmailRequired = errors.New("email is required")

// AuthService issues tokens and answers privilege questions.
type AuthService struct {
	users  repositories.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(users repositories.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// IssueToken signs payload for one hour. The payload is not checked against
// the user store.
func (s *AuthService) IssueToken(payload map[string]any) (string, error) {
	if email, _ := payload["email"].(string); email == "" {
		return "", ErrEmailRequired
	}

	token, err := s.issuer.Issue(payload)
	if err != nil {
		return "", err
	}
	metrics.TokensIssued.Inc()
	return token, nil
}

// IsAdmin reads the user by email on every call. An unknown email is not an
// error, just not an admin.
func (s *AuthService) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return u.IsAdmin(), nil
}
