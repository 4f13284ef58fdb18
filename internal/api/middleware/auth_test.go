package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func gatewayContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken_AttachesLiveIdentity(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	// Role in the store differs from the role claim frozen in the token:
	// the context must carry the live one.
	issued, err := tokens.Issue(&domain.User{Username: "alice", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	users := newStubUserRepo(&domain.User{Username: "alice", Role: domain.RoleUser, Active: true})

	c, _ := gatewayContext(t, "Bearer "+issued)

	called := false
	handler := Auth(tokens, users, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if got := c.Get(ContextUsername); got != "alice" {
		t.Fatalf("username not set, got %v", got)
	}
	if got := c.Get(ContextRole); got != domain.RoleUser {
		t.Fatalf("expected live role %q, got %v", domain.RoleUser, got)
	}
}

func TestAuth_MissingHeader_Anonymous(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := gatewayContext(t, "")

	called := false
	handler := Auth(tokens, newStubUserRepo(), zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("anonymous request must still reach next")
	}
	if c.Get(ContextRole) != nil {
		t.Fatalf("no identity should be attached")
	}
}

func TestAuth_MalformedScheme_Anonymous(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := gatewayContext(t, "Token abc")

	handler := Auth(tokens, newStubUserRepo(), zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if c.Get(ContextRole) != nil {
		t.Fatalf("no identity should be attached")
	}
}

func TestAuth_BadToken_SwallowedAndAnonymous(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := gatewayContext(t, "Bearer garbage")

	called := false
	handler := Auth(tokens, newStubUserRepo(), zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("bad token must not fail the request, got %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(ContextRole) != nil {
		t.Fatalf("no identity should be attached")
	}
}

func TestAuth_InactiveUser_Anonymous(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	issued, err := tokens.Issue(&domain.User{Username: "bob", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	users := newStubUserRepo(&domain.User{Username: "bob", Role: domain.RoleAdmin, Active: false})

	c, _ := gatewayContext(t, "Bearer "+issued)

	handler := Auth(tokens, users, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if c.Get(ContextRole) != nil {
		t.Fatalf("inactive account must not establish an identity")
	}
}

func TestAuth_UnknownSubject_Anonymous(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	issued, err := tokens.Issue(&domain.User{Username: "ghost", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := gatewayContext(t, "Bearer "+issued)

	handler := Auth(tokens, newStubUserRepo(), zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if c.Get(ContextRole) != nil {
		t.Fatalf("unknown subject must not establish an identity")
	}
}
