package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/agri-supply-ledger/internal/repository"
	"github.com/iliyamo/agri-supply-ledger/internal/utils"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// Issuer mints access tokens.
type Issuer interface {
	Issue(subject string, ttl time.Duration) (utils.AccessToken, error)
}

// Authenticator exchanges a username and password for an access token.
type Authenticator struct {
	users  UserStore
	hasher Hasher
	issuer Issuer
	ttl    time.Duration
	// dummy is compared against when the username is unknown so both
	// failure paths cost one bcrypt verification.
	dummy string
}

func NewAuthenticator(users UserStore, hasher Hasher, issuer Issuer, ttl time.Duration) (*Authenticator, error) {
	dummy, err := hasher.Hash("agri-supply-ledger/no-such-user")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}
	return &Authenticator{users: users, hasher: hasher, issuer: issuer, ttl: ttl, dummy: dummy}, nil
}

// Login verifies the password and issues a token whose subject is the
// username.  Unknown users and wrong passwords both return
// ErrInvalidCredentials.  The active flag is not checked here; an inactive
// principal is rejected when the token is used.
func (a *Authenticator) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	u, err := a.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		a.hasher.Verify(password, a.dummy)
		return utils.AccessToken{}, ErrInvalidCredentials
	case err != nil:
		return utils.AccessToken{}, fmt.Errorf("load principal: %w", err)
	}
	if !a.hasher.Verify(password, u.PasswordHash) {
		return utils.AccessToken{}, ErrInvalidCredentials
	}
	tok, err := a.issuer.Issue(u.Username, a.ttl)
	if err != nil {
		return utils.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
