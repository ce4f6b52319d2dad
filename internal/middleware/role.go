package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
)

// RequireCapability returns a middleware that lets the request through only
// if policy grants capability to the authenticated principal.  It must run
// after JWTAuth; a request without a principal is treated as denied.
func RequireCapability(policy auth.Policy, capability auth.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok || !policy.Allow(p.User, capability) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
