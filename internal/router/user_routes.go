package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
)

// RegisterUsers registers principal administration.  All three routes need
// CapManageUsers.
func RegisterUsers(e *echo.Echo, h Handlers) {
	authn := middleware.JWTAuth(h.Guard, h.Log)
	manage := middleware.RequireCapability(h.Policy, auth.CapManageUsers)
	e.GET("/get-users", h.Users.List, authn, manage)
	e.GET("/get-user/:username", h.Users.Get, authn, manage)
	e.POST("/add-user", h.Users.Create, authn, manage)
}
