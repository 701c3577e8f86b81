package session

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which menu commands a session may run
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the state of one logged-in user
type Session struct {
	ID        string
	User      string
	Role      Role
	StartedAt time.Time
}

// New creates a session for user; the admin role goes to adminUser only
func New(user, adminUser string) *Session {
	role := RoleUser
	if user == adminUser {
		role = RoleAdmin
	}
	return &Session{
		ID:        uuid.New().String(),
		User:      user,
		Role:      role,
		StartedAt: time.Now(),
	}
}

// IsAdmin reports whether the session has the admin role
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ShortID returns the first 8 characters of the session ID for log lines
func (s *Session) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}
