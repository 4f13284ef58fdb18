package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// TokenService issues and validates HS256-signed bearer tokens. It is
// deliberately stateless: signature and expiry are the only checks, and
// every failure collapses into domain.ErrInvalidToken so cryptographic
// detail never leaks to callers.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.TokenClaims{Subject: sub}
	out.Role, _ = claims["role"].(string)
	if v, ok := claims["iat"].(float64); ok {
		out.IssuedAt = time.Unix(int64(v), 0)
	}
	if v, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(v), 0)
	}
	return out, nil
}

func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// parse verifies signature and expiry. jwt/v5 rejects expired tokens during
// ParseWithClaims, so a nil error plus tkn.Valid covers both checks.
func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
