package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnsupportedAlgorithm is returned for anything other than the HMAC
// family.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// AccessToken represents a signed JWT access token along with its expiry.
// ID is the token's jti, which the logout denylist keys on.
type AccessToken struct {
	Token string    // the serialized JWT string
	ID    string    // jti claim
	Exp   time.Time // the UTC expiration time
}

// TokenIssuer signs and parses access tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenIssuer validates the algorithm name (HS256, HS384 or HS512) and
// returns an issuer using secret.
func NewTokenIssuer(secret, algorithm string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	method := jwt.GetSigningMethod(strings.ToUpper(algorithm))
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock replaces the issuer's clock.  It is used by tests to mint and
// check tokens at fixed instants.
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *ti
	cp.now = now
	return &cp
}

// Issue builds and signs a token for subject that expires after ttl.  The
// claims are sub, exp, iat and a random jti.
func (ti *TokenIssuer) Issue(subject string, ttl time.Duration) (AccessToken, error) {
	now := ti.now().UTC()
	exp := now.Add(ttl)
	id := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        id,
	}
	signed, err := jwt.NewWithClaims(ti.method, claims).SignedString(ti.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, ID: id, Exp: exp}, nil
}

// Parse verifies signature, algorithm and expiry and returns the claims.
// Tokens without exp are rejected.
func (ti *TokenIssuer) Parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return ti.secret, nil },
		jwt.WithValidMethods([]string{ti.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
