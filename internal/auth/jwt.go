// Package auth signs and verifies the visitor cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid visitor token")

// VisitorTokens issues and validates HS256 tokens whose subject is an
// anonymous visitor ID. There are no accounts; the token only lets a browser
// find its own preferences and session again.
type VisitorTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewVisitorTokens creates a token manager. secret must be at least 32
// characters; config validation enforces it.
func NewVisitorTokens(secret, issuer string, ttl time.Duration) *VisitorTokens {
	return &VisitorTokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for visitorID and returns it with its expiry.
func (m *VisitorTokens) Issue(visitorID uuid.UUID) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   visitorID.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign visitor token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the token and returns the visitor ID it carries together
// with the token's expiry.
func (m *VisitorTokens) Parse(tokenString string) (uuid.UUID, time.Time, error) {
	if tokenString == "" {
		return uuid.Nil, time.Time{}, fmt.Errorf("auth: empty token: %w", ErrInvalidToken)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("auth: %w: %w", ErrInvalidToken, err)
	}

	visitorID, err := uuid.Parse(claims.Subject)
	if err != nil || visitorID == uuid.Nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("auth: subject %q: %w", claims.Subject, ErrInvalidToken)
	}
	return visitorID, claims.ExpiresAt.Time, nil
}
