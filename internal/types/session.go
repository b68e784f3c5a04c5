package types

import (
	"strings"
	"time"
)

const (
	SessionGroupDefault = "default"
	SessionGroupPinned  = "pinned"
)

type Session struct {
	ID        string        `json:"id"`
	Meta      SessionMeta   `json:"meta"`
	Model     string        `json:"model"`
	Config    SessionConfig `json:"config"`
	Group     string        `json:"group,omitempty"`
	Pinned    bool          `json:"pinned,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionPinned reports whether the session sits in the pinned section. The
// legacy "pinned" group id still counts as pinned.
func SessionPinned(session *Session) bool {
	if session == nil {
		return false
	}
	return session.Pinned || strings.TrimSpace(session.Group) == SessionGroupPinned
}

// Clone returns a shallow copy safe to mutate before publishing to a store.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	return &next
}

type SessionGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}
