// Package auth issues and verifies the JWT pairs that guard the API.
// Access tokens are short-lived bearer credentials; refresh tokens are
// longer-lived and only good for minting a new pair.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *Manager) Issue(userID uuid.UUID) (TokenPair, error) {
	access, err := m.sign(userID, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("signing access token: %w", err)
	}

	refresh, err := m.sign(userID, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("signing refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess returns the subject of a valid access token. Refresh
// tokens are rejected here so they cannot be replayed against the API.
func (m *Manager) VerifyAccess(token string) (uuid.UUID, error) {
	return m.verify(token, tokenTypeAccess)
}

// Refresh trades a valid refresh token for a fresh pair.
func (m *Manager) Refresh(refreshToken string) (TokenPair, error) {
	userID, err := m.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	return m.Issue(userID)
}

func (m *Manager) sign(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"typ": tokenType,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) verify(tokenStr, wantType string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	if typ, _ := claims["typ"].(string); typ != wantType {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
