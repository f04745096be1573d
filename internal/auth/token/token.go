// Package token issues and verifies the signed bearer tokens used by
// the HTTP API.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/config"
)

const issuer = "signdesk"

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrNoSecret     = errors.New("jwt secret is not configured")
)

// Claims carried by every issued token.
type Claims struct {
	UserID   string  `json:"uid"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	OfficeID *string `json:"office_id,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func New(cfg config.Config, clk clock.Clock) (*Manager, error) {
	if cfg.AuthJWTSecret == "" {
		return nil, ErrNoSecret
	}
	return &Manager{
		secret: []byte(cfg.AuthJWTSecret),
		ttl:    time.Duration(cfg.AuthTokenTTL) * time.Hour,
		clock:  clk,
	}, nil
}

// Issue signs a token for the given subject. The returned time is the
// token expiry.
func (m *Manager) Issue(userID, email, role string, officeID *string) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID:   userID,
		Email:    email,
		Role:     role,
		OfficeID: officeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry of a token and returns its
// claims.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
