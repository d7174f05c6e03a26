package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sangam-backend/internal/auth"
)

const identityKey = "auth.identity"

// JWTAuth verifies the bearer token and stashes the caller's identity in the
// request context for handlers and the audit recorder.
func JWTAuth(mgr *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization header must be a bearer token"})
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			ident, err := mgr.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// RequireRoles rejects callers whose role claim is not in the allowed set.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			if !allowed[ident.Role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	ident, ok := c.Get(identityKey).(auth.Identity)
	return ident, ok
}

// SetIdentity is used by tests to inject an authenticated caller.
func SetIdentity(c echo.Context, ident auth.Identity) { c.Set(identityKey, ident) }
