package auth

import (
	"context"
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleConserje   Role = "conserje"
	RoleDirectiva  Role = "directiva"
	RoleResidente  Role = "residente"
)

// Session is the authenticated caller. It is passed explicitly to every
// service that needs to know who is acting.
type Session struct {
	ID        string    `json:"-"`
	UserID    int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// CanManageGastos reports whether the session may create, edit or delete expenses.
func (s *Session) CanManageGastos() bool {
	switch s.Role {
	case RoleSuperAdmin, RoleAdmin, RoleDirectiva:
		return true
	}
	return false
}

func (s *Session) IsResidente() bool {
	return s.Role == RoleResidente
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by SessionMiddleware, or nil.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
