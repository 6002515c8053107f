package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")
)

// Session is an authenticated admin identity with an explicit lifetime.
type Session struct {
	AdminID   uuid.UUID
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Remaining is the lifetime left at now, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager issues and parses HS256 session tokens.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	revoked RevocationStore
}

// NewSessionManager creates a manager; revoked may be nil when logout revocation is not tracked.
func NewSessionManager(secret string, ttl time.Duration, revoked RevocationStore) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: revoked,
	}
}

// WithClock replaces the session clock.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for the admin and its signed token.
func (m *SessionManager) Issue(adminID uuid.UUID, email string) (string, *Session, error) {
	now := m.now().UTC().Truncate(time.Second)
	session := &Session{
		AdminID:   adminID,
		Email:     email,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, session, nil
}

// Parse validates the signature, the TTL and the revocation list.
func (m *SessionManager) Parse(ctx context.Context, token string) (*Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidSession
	}

	session := &Session{
		AdminID:   adminID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	// The signed expiry is trusted only up to the configured TTL.
	if m.now().After(session.IssuedAt.Add(m.ttl)) {
		return nil, ErrSessionExpired
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check session revocation: %w", err)
		}
		if revoked {
			return nil, ErrSessionRevoked
		}
	}
	return session, nil
}

// Revoke blocks the session's token until it would have expired anyway.
func (m *SessionManager) Revoke(ctx context.Context, session *Session) error {
	if m.revoked == nil {
		return nil
	}
	remaining := session.Remaining(m.now())
	if remaining == 0 {
		return nil
	}
	return m.revoked.Revoke(ctx, session.TokenID, remaining)
}
