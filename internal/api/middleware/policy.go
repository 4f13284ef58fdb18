package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// Rule maps an HTTP verb and a path prefix to the roles allowed through.
type Rule struct {
	Method string
	Prefix string
	Roles  []string
}

// DefaultRules is the access table for the inventory routes: reads are open
// to both roles, every mutation is admin-only. Evaluated top-down, first
// match wins.
func DefaultRules() []Rule {
	return []Rule{
		{http.MethodGet, "/vehicles", []string{domain.RoleUser, domain.RoleAdmin}},
		{http.MethodPost, "/vehicles", []string{domain.RoleAdmin}},
		{http.MethodPut, "/vehicles", []string{domain.RoleAdmin}},
		{http.MethodPatch, "/vehicles", []string{domain.RoleAdmin}},
		{http.MethodDelete, "/vehicles", []string{domain.RoleAdmin}},
	}
}

// publicPrefixes bypass the rule table entirely: auth endpoints and
// operational probes need no principal.
var publicPrefixes = []string{"/auth", "/health", "/metrics"}

// Policy enforces the access table. Requests that never made it through Auth
// get 401 on any non-public route; authenticated requests with the wrong
// role get 403; routes no rule matches require any authenticated principal.
func Policy(rules []Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if isPublic(path) {
				return next(c)
			}

			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				return unauthenticated(c)
			}

			for _, rule := range rules {
				if rule.Method != c.Request().Method || !strings.HasPrefix(path, rule.Prefix) {
					continue
				}
				for _, allowed := range rule.Roles {
					if allowed == role {
						return next(c)
					}
				}
				return domain.ErrForbidden
			}

			// No rule matched: authenticated, any role.
			return next(c)
		}
	}
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// unauthenticated writes the fixed 401 body for missing/rejected
// credentials on protected routes: {status, message, timestamp}.
func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"status":    http.StatusUnauthorized,
		"message":   "access denied: missing or invalid token",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
