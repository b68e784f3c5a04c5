package state

import (
	"sort"
	"strings"
	"time"

	"sidebar/internal/types"
)

type SessionState struct {
	Sessions map[string]*types.Session
	Groups   []types.SessionGroup
	ActiveID string
}

func NewSessionState(sessions []*types.Session, groups []types.SessionGroup) SessionState {
	byID := make(map[string]*types.Session, len(sessions))
	for _, session := range sessions {
		if session == nil || strings.TrimSpace(session.ID) == "" {
			continue
		}
		byID[session.ID] = session
	}
	return SessionState{Sessions: byID, Groups: append([]types.SessionGroup{}, groups...)}
}

// SessionByID returns nil when the id does not resolve, e.g. while a deleted
// session's row is still being torn down.
func (s SessionState) SessionByID(id string) *types.Session {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions[id]
}

func (s SessionState) IsActive(id string) bool {
	return id != "" && s.ActiveID == id
}

// Order lists session ids pinned first, then most recently updated first.
func (s SessionState) Order() []string {
	ids := make([]string, 0, len(s.Sessions))
	for id := range s.Sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.Sessions[ids[i]], s.Sessions[ids[j]]
		pa, pb := types.SessionPinned(a), types.SessionPinned(b)
		if pa != pb {
			return pa
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})
	return ids
}

func (s SessionState) Group(id string) (types.SessionGroup, bool) {
	for _, group := range s.Groups {
		if group.ID == id {
			return group, true
		}
	}
	return types.SessionGroup{}, false
}

func (s SessionState) withSession(session *types.Session) SessionState {
	next := make(map[string]*types.Session, len(s.Sessions)+1)
	for id, existing := range s.Sessions {
		next[id] = existing
	}
	next[session.ID] = session
	s.Sessions = next
	return s
}

func UpsertSession(session *types.Session) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		if session == nil || strings.TrimSpace(session.ID) == "" {
			return s
		}
		return s.withSession(session)
	}
}

func RemoveSession(id string) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		if _, ok := s.Sessions[id]; !ok {
			return s
		}
		next := make(map[string]*types.Session, len(s.Sessions))
		for key, existing := range s.Sessions {
			if key != id {
				next[key] = existing
			}
		}
		s.Sessions = next
		if s.ActiveID == id {
			s.ActiveID = ""
		}
		return s
	}
}

func SetActive(id string) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		s.ActiveID = strings.TrimSpace(id)
		return s
	}
}

func SetPinned(id string, pinned bool, now time.Time) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		current := s.SessionByID(id)
		if current == nil {
			return s
		}
		next := current.Clone()
		next.Pinned = pinned
		if !pinned && next.Group == types.SessionGroupPinned {
			next.Group = types.SessionGroupDefault
		}
		next.UpdatedAt = now
		return s.withSession(next)
	}
}

func MoveToGroup(id, groupID string, now time.Time) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		current := s.SessionByID(id)
		if current == nil {
			return s
		}
		next := current.Clone()
		next.Group = strings.TrimSpace(groupID)
		next.UpdatedAt = now
		return s.withSession(next)
	}
}

func AddGroup(group types.SessionGroup) func(SessionState) SessionState {
	return func(s SessionState) SessionState {
		if strings.TrimSpace(group.ID) == "" {
			return s
		}
		groups := make([]types.SessionGroup, 0, len(s.Groups)+1)
		for _, existing := range s.Groups {
			if existing.ID != group.ID {
				groups = append(groups, existing)
			}
		}
		s.Groups = append(groups, group)
		return s
	}
}
