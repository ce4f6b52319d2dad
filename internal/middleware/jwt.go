package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/logging"
)

// TokenAuthenticator resolves a raw bearer token to a principal.
// *auth.Guard implements it.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// Unauthorized writes the 401 response shared by the token endpoint and
// the bearer middleware, including the WWW-Authenticate challenge.
func Unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the resulting principal in the request context.  Handlers read
// it back with CurrentPrincipal.
func JWTAuth(guard TokenAuthenticator, log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return Unauthorized(c, "Not authenticated")
			}

			p, err := guard.Authenticate(c.Request().Context(), raw)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrInvalidCredentials):
				return Unauthorized(c, "Could not validate credentials")
			case errors.Is(err, auth.ErrInactiveAccount):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Inactive user"})
			default:
				log.Error(c.Request().Context(), "authenticate bearer token", "err", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}

			setPrincipal(c, p)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header.  The scheme
// is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	const scheme = "bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(scheme):])
	return tok, tok != ""
}
