package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
	"github.com/iliyamo/agri-supply-ledger/internal/utils"
)

// LoginService exchanges credentials for a token.  *auth.Authenticator
// implements it.
type LoginService interface {
	Login(ctx context.Context, username, password string) (utils.AccessToken, error)
}

// AuthHandler bundles dependencies for auth endpoints.  Denylist is nil
// when token revocation is not configured.
type AuthHandler struct {
	Accounts LoginService
	Denylist auth.Denylist
	Log      logging.Logger
}

func NewAuthHandler(login LoginService, denylist auth.Denylist, log logging.Logger) *AuthHandler {
	return &AuthHandler{Accounts: login, Denylist: denylist, Log: log}
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token implements the password grant: form fields username and password.
// The username is matched exactly as stored, surrounding spaces included.
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := dbContext(c)
	defer cancel()
	tok, err := h.Accounts.Login(ctx, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return middleware.Unauthorized(c, "Incorrect username or password")
	}
	if err != nil {
		h.Log.Error(c.Request().Context(), "login failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.Token, TokenType: "bearer"})
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c echo.Context) error {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return middleware.Unauthorized(c, "Not authenticated")
	}
	return c.JSON(http.StatusOK, p.User)
}

// Logout revokes the presented token until it would have expired.
func (h *AuthHandler) Logout(c echo.Context) error {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return middleware.Unauthorized(c, "Not authenticated")
	}
	if h.Denylist == nil || p.TokenID == "" {
		return c.NoContent(http.StatusNoContent)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.Denylist.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		h.Log.Error(ctx, "revoke token", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
