// Package token issues and verifies the bearer tokens that authenticate API
// requests. Tokens are HS256-signed JWTs carrying the user's identity and
// tenant.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vitien/internal/core"
)

const TTL = 12 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared secret.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token for the user, valid for TTL.
func (m *Manager) Issue(u core.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		TenantID: u.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token string and returns its claims. Expired, malformed or
// wrongly signed tokens fail with ErrInvalidToken.
func (m *Manager) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID == "" || claims.TenantID == "" {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
