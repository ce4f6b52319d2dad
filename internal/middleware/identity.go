package middleware

// identity.go holds the context key under which JWTAuth stores the
// authenticated principal, plus accessors for handlers.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
)

const principalKey = "principal"

func setPrincipal(c echo.Context, p *auth.Principal) { c.Set(principalKey, p) }

// CurrentPrincipal returns the principal stored by JWTAuth.
func CurrentPrincipal(c echo.Context) (*auth.Principal, bool) {
	p, ok := c.Get(principalKey).(*auth.Principal)
	return p, ok && p != nil && p.User != nil
}

// Username returns the authenticated username, or "anonymous" when the
// request carries no principal.  Used for log attributes.
func Username(c echo.Context) string {
	if p, ok := CurrentPrincipal(c); ok {
		return p.User.Username
	}
	return "anonymous"
}
