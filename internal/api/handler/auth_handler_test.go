package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

type stubAuthService struct {
	result *ports.LoginResult
	err    error
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func loginContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		result: &ports.LoginResult{Token: "signed-token", Type: "Bearer", ExpiresIn: 86400},
	})

	c, rec := loginContext(`{"username":"admin","password":"admin123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token != "signed-token" || body.Type != "Bearer" || body.ExpiresIn != 86400 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := loginContext(`{"username":"admin","password":"nope"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to bubble up, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := loginContext(`{"username":"admin"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %v", err)
	}
}
