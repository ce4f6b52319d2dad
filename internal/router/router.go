package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/handler"
	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
)

// Handlers groups everything the route table needs.  Revocation is true
// when a denylist is configured; only then is /logout exposed.
type Handlers struct {
	Auth        *handler.AuthHandler
	Supplies    *handler.SupplyHandler
	Productions *handler.ProductionHandler
	Sales       *handler.SaleHandler
	Buyers      *handler.BuyerHandler
	Users       *handler.UserHandler
	DB          handler.Pinger

	Guard      middleware.TokenAuthenticator
	Policy     auth.Policy
	Log        logging.Logger
	Revocation bool
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	if h.DB != nil {
		e.GET("/readyz", handler.Ready(h.DB))
	}
	e.POST("/token", h.Auth.Token)
}

// RegisterAuth registers the principal endpoints.  They need a valid token
// but no capability.
func RegisterAuth(e *echo.Echo, h Handlers) {
	authn := middleware.JWTAuth(h.Guard, h.Log)
	e.GET("/users/me/", h.Auth.Me, authn)
	if h.Revocation {
		e.POST("/logout", h.Auth.Logout, authn)
	}
}

// Register wires every route family onto e.
func Register(e *echo.Echo, h Handlers) {
	if h.Policy == nil {
		h.Policy = auth.AnyActivePrincipal{}
	}
	RegisterRoutes(e, h)
	RegisterAuth(e, h)
	RegisterLedger(e, h)
	RegisterUsers(e, h)
}
