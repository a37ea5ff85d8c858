// Package token issues and validates the JWTs used for request
// authentication and for one-time account activation links. The rest of
// the application treats tokens as opaque strings.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	purposeAuth       = "auth"
	purposeActivation = "activate"
)

// ErrInvalidToken is returned for malformed, expired, or mismatched tokens.
var ErrInvalidToken = fmt.Errorf("invalid token")

// Manager signs and verifies tokens with an HMAC secret.
type Manager struct {
	secret        []byte
	authTTL       time.Duration
	activationTTL time.Duration
}

// NewManager returns a Manager. TTLs of zero fall back to 72h for auth
// tokens and 48h for activation tokens.
func NewManager(secret string, authTTL, activationTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	if authTTL == 0 {
		authTTL = 72 * time.Hour
	}
	if activationTTL == 0 {
		activationTTL = 48 * time.Hour
	}
	return &Manager{secret: []byte(secret), authTTL: authTTL, activationTTL: activationTTL}, nil
}

// IssueAuth creates a bearer token for the given user.
func (m *Manager) IssueAuth(userID uint) (string, error) {
	return m.issue(userID, purposeAuth, m.authTTL)
}

// IssueActivation creates a one-time activation token for the given user.
func (m *Manager) IssueActivation(userID uint) (string, error) {
	return m.issue(userID, purposeActivation, m.activationTTL)
}

func (m *Manager) issue(userID uint, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatUint(uint64(userID), 10),
		"purpose": purpose,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// ValidateAuth verifies a bearer token and returns the user ID it names.
func (m *Manager) ValidateAuth(tokenString string) (uint, error) {
	return m.validate(tokenString, purposeAuth)
}

// ValidateActivation verifies an activation token and returns the user ID
// it names.
func (m *Manager) ValidateActivation(tokenString string) (uint, error) {
	return m.validate(tokenString, purposeActivation)
}

func (m *Manager) validate(tokenString, purpose string) (uint, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return 0, ErrInvalidToken
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
