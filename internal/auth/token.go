package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 12 * time.Hour

var ErrInvalidToken = errors.New("token inválido o expirado")

type claims struct {
	SessionID string `json:"sid"`
	UserID    int    `json:"uid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 session tokens. Revoked session ids
// are remembered until the token would have expired anyway.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (t *TokenIssuer) Issue(u User) (*Session, error) {
	now := t.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ExpiresAt: now.Add(t.ttl),
	}
	c := claims{
		SessionID: s.ID,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("firmando token: %w", err)
	}
	s.Token = signed
	return s, nil
}

func (t *TokenIssuer) Parse(raw string) (*Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.SessionID == "" || t.isRevoked(c.SessionID) {
		return nil, ErrInvalidToken
	}
	s := &Session{
		ID:     c.SessionID,
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   c.Role,
		Token:  raw,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

// Revoke invalidates the session's token before its expiry.
func (t *TokenIssuer) Revoke(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for sid, exp := range t.revoked {
		if now.After(exp) {
			delete(t.revoked, sid)
		}
	}
	t.revoked[s.ID] = s.ExpiresAt
}

func (t *TokenIssuer) isRevoked(sid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[sid]
	return ok
}
