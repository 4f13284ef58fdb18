package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

// Context keys set by Auth on successful authentication.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Auth is the per-request authentication gateway. It never fails a request
// itself: every rejection path degrades to an anonymous context, and the
// Policy middleware decides later whether anonymity is acceptable for the
// route.
//
// The role attached to the context is the identity store's CURRENT role, not
// the snapshot embedded in the token claim. The token proves who the caller
// is; what they may do is always resolved live, so a stale token cannot keep
// a revoked privilege.
func Auth(tokens ports.TokenService, users ports.UserRepository, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			raw := parts[1]

			// Cheap claim peek before touching the identity store.
			subject, err := tokens.ExtractSubject(raw)
			if err != nil {
				logger.Debug().Err(err).Msg("bearer token rejected, continuing anonymous")
				return next(c)
			}

			if username, _ := c.Get(ContextUsername).(string); username != "" {
				// Identity already established for this request.
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					logger.Error().Err(err).Str("username", subject).Msg("identity lookup failed")
				}
				return next(c)
			}
			if !user.Active {
				logger.Warn().Str("username", subject).Msg("token presented for inactive account")
				return next(c)
			}

			if _, err := tokens.Validate(raw); err != nil {
				logger.Debug().Err(err).Str("username", subject).Msg("token validation failed")
				return next(c)
			}

			c.Set(ContextUsername, user.Username)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}
