package ports

import "context"

// LoginResult is the wire-level login contract.
type LoginResult struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ExpiresIn int64  `json:"expiresIn"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
