// Package auth turns bearer tokens and passwords into authenticated
// principals and decides which capabilities a principal holds.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/agri-supply-ledger/internal/model"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
)

var (
	// ErrInvalidCredentials covers every way a token or password can fail:
	// bad signature, expiry, unknown subject, revoked token, wrong password.
	// Callers cannot tell the cases apart.
	ErrInvalidCredentials = errors.New("could not validate credentials")
	// ErrInactiveAccount is returned for a valid token whose principal has
	// been deactivated.
	ErrInactiveAccount = errors.New("inactive user")
)

// UserStore is the read side of the credential store.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenParser verifies a raw token and returns its claims.
type TokenParser interface {
	Parse(token string) (*jwt.RegisteredClaims, error)
}

// Principal is an authenticated caller together with the identity of the
// token it presented.
type Principal struct {
	User      *model.User
	TokenID   string
	ExpiresAt time.Time
}

// Guard authenticates bearer tokens.
type Guard struct {
	tokens   TokenParser
	users    UserStore
	denylist Denylist
}

// NewGuard builds a guard.  denylist may be nil, in which case tokens are
// valid until they expire.
func NewGuard(tokens TokenParser, users UserStore, denylist Denylist) *Guard {
	return &Guard{tokens: tokens, users: users, denylist: denylist}
}

// Authenticate resolves token to an active principal.
func (g *Guard) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}

	if g.denylist != nil && claims.ID != "" {
		revoked, err := g.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrInvalidCredentials
		}
	}

	u, err := g.users.GetByUsername(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load principal: %w", err)
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}

	p := &Principal{User: u, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}
