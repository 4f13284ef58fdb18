package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// AuthService implements login. Unknown user, wrong password, and inactive
// account all surface as ErrInvalidCredentials so responses cannot be used
// to enumerate usernames.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn().Str("username", username).Msg("login attempt on inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}
