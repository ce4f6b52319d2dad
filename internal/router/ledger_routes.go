package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
)

// RegisterLedger registers the supply, production, selling and buyer
// endpoints.  Reads need CapReadLedger, writes CapWriteLedger.  Middleware
// is attached per route so unknown paths still get echo's plain 404.
func RegisterLedger(e *echo.Echo, h Handlers) {
	authn := middleware.JWTAuth(h.Guard, h.Log)
	read := middleware.RequireCapability(h.Policy, auth.CapReadLedger)
	write := middleware.RequireCapability(h.Policy, auth.CapWriteLedger)

	// ---- Supplies ----
	e.GET("/get-supplies", h.Supplies.List, authn, read)
	e.GET("/get-supply/:id", h.Supplies.Get, authn, read)
	e.POST("/add-supply", h.Supplies.Create, authn, write)
	e.PUT("/update-supply/:id", h.Supplies.Update, authn, write)
	e.DELETE("/delete-supply/:id", h.Supplies.Delete, authn, write)
	e.DELETE("/delete-supplies", h.Supplies.DeleteAll, authn, write)

	// ---- Productions ----
	e.GET("/get-productions", h.Productions.List, authn, read)
	e.GET("/get-production/:id", h.Productions.Get, authn, read)
	e.POST("/add-production", h.Productions.Create, authn, write)
	e.DELETE("/delete-production/:id", h.Productions.Delete, authn, write)
	e.DELETE("/delete-productions", h.Productions.DeleteAll, authn, write)

	// ---- Sellings ----
	e.GET("/get-sellings", h.Sales.List, authn, read)
	e.GET("/get-selling/:id", h.Sales.Get, authn, read)
	e.POST("/add-selling", h.Sales.Create, authn, write)
	e.PUT("/update-selling/:id", h.Sales.Update, authn, write)
	e.DELETE("/delete-selling/:id", h.Sales.Delete, authn, write)
	e.DELETE("/delete-sellings", h.Sales.DeleteAll, authn, write)

	// ---- Buyers ----
	e.GET("/get-buyers", h.Buyers.List, authn, read)
	e.GET("/get-buyer/:id", h.Buyers.Get, authn, read)
	e.POST("/add-buyer", h.Buyers.Create, authn, write)
	e.PUT("/update-buyer/:id", h.Buyers.Update, authn, write)
	e.DELETE("/delete-buyer/:id", h.Buyers.Delete, authn, write)
	e.DELETE("/delete-buyers", h.Buyers.DeleteAll, authn, write)
}
