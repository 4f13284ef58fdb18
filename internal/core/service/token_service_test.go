package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

func TestTokenService_IssueValidateRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	user := &domain.User{Username: "admin", Role: domain.RoleAdmin, Active: true}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future, got %v", claims.ExpiresAt)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// Sign an already-expired token with the correct secret: signature is
	// valid, expiry is not.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ExtractSubject(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken from ExtractSubject, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{Username: "user", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(&domain.User{Username: "user", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// Flip one byte in the signed payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Validate(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Validate(%q): expected ErrInvalidToken, got %v", token, err)
		}
		if _, err := svc.ExtractSubject(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("ExtractSubject(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	if svc.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", svc.TTL())
	}
}
