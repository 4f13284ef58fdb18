package ports

import (
	"time"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates stateless signed tokens. Every parsing,
// signature, or expiry failure surfaces as domain.ErrInvalidToken.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
	// ExtractSubject peeks the subject claim so callers can short-circuit
	// before an identity-store lookup. The signature is still checked.
	ExtractSubject(tokenString string) (string, error)
	// TTL is the configured token lifetime, exposed for the login response.
	TTL() time.Duration
}
