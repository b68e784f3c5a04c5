package app

import (
	"time"

	"sidebar/internal/app/sanitizer"
	"sidebar/internal/state"
	"sidebar/internal/types"
)

// Stores bundles the global state a session row reads from.
type Stores struct {
	Sessions *state.Store[state.SessionState]
	Chat     *state.Store[state.ChatState]
	Agent    *state.Store[state.AgentState]
}

// NewStores seeds the global stores with sessions and the inbox default model.
func NewStores(sessions state.SessionState, defaultModel string) Stores {
	return Stores{
		Sessions: state.New(sessions),
		Chat:     state.New(state.ChatState{}),
		Agent:    state.New(state.AgentState{DefaultModel: defaultModel}),
	}
}

// SessionSnapshot is the projection of one session a row renders from. It is
// comparable, so == is the shallow equality used to gate re-renders.
type SessionSnapshot struct {
	Pinned           bool
	Title            string
	Description      string
	Avatar           string
	AvatarBackground string
	UpdatedAt        time.Time
	Model            string
	Group            string
	ClientProvider   string
	Missing          bool
}

// SelectSessionSnapshot projects session id, or a Missing snapshot when it is gone.
func SelectSessionSnapshot(id string) func(state.SessionState) SessionSnapshot {
	return func(s state.SessionState) SessionSnapshot {
		session := s.SessionByID(id)
		if session == nil {
			return SessionSnapshot{Missing: true}
		}
		meta := sanitizeMeta(session.Meta)
		return SessionSnapshot{
			Pinned:           types.SessionPinned(session),
			Title:            meta.DisplayTitle(),
			Description:      meta.DisplayDescription(),
			Avatar:           meta.DisplayAvatar(),
			AvatarBackground: meta.BackgroundColor,
			UpdatedAt:        session.UpdatedAt,
			Model:            session.Model,
			Group:            session.Group,
			ClientProvider:   session.Config.Provider,
		}
	}
}

// sanitizeMeta runs before the display fallbacks so a title made only of
// control sequences still falls back to the default.
func sanitizeMeta(meta types.SessionMeta) types.SessionMeta {
	meta.Title = sanitizer.Line(meta.Title)
	meta.Description = sanitizer.Line(meta.Description)
	meta.Avatar = sanitizer.Line(meta.Avatar)
	return meta
}

// EqualSessionSnapshot is the shallow equality gating row re-renders.
func EqualSessionSnapshot(a, b SessionSnapshot) bool {
	return a == b
}

func selectActive(id string) func(state.SessionState) bool {
	return func(s state.SessionState) bool {
		return s.IsActive(id)
	}
}

func selectGenerating(id string) func(state.ChatState) bool {
	return func(s state.ChatState) bool {
		return s.IsGenerating(id)
	}
}

func selectDefaultModel(s state.AgentState) string {
	return s.DefaultModel
}
