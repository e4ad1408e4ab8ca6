// Package auth issues and verifies bearer tokens and evaluates per-route
// access requirements against the verified claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minimal-api/internal/model"
)

// TokenTTL is the lifetime of every issued token. It is intentionally not
// configurable per call or per deployment.
const TokenTTL = 24 * time.Hour

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrMissingSecret   = errors.New("token signing secret is empty")
)

// claims is the token payload. Perfil duplicates role for clients that match
// on that claim name.
type claims struct {
	Email  string `json:"Email"`
	Role   string `json:"role"`
	Perfil string `json:"Perfil"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a shared secret.
// It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

type Option func(*TokenIssuer)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// NewTokenIssuer returns an issuer for secret. An empty secret is an error:
// there is no fallback key.
func NewTokenIssuer(secret []byte, opts ...Option) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	t := &TokenIssuer{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue builds a signed token for the given identity. The token expires
// TokenTTL after issuance.
func (t *TokenIssuer) Issue(email string, role model.Role) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(TokenTTL)

	c := claims{
		Email:  email,
		Role:   role.String(),
		Perfil: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of tokenStr. Issuer and audience
// are not checked. Every failure wraps ErrUnauthenticated.
func (t *TokenIssuer) Verify(tokenStr string) (*model.TokenClaims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, ErrUnauthenticated
	}

	return &model.TokenClaims{
		Email: c.Email,
		Role:  model.Role(c.Role),
	}, nil
}
