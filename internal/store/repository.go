package store

import (
	"context"
	"errors"
	"strings"

	"sidebar/internal/types"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Sessions() SessionStore
	Groups() GroupStore
	Close() error
}

type SessionStore interface {
	List(ctx context.Context) ([]*types.Session, error)
	Get(ctx context.Context, id string) (*types.Session, error)
	Upsert(ctx context.Context, session *types.Session) (*types.Session, error)
	Delete(ctx context.Context, id string) error
}

type GroupStore interface {
	List(ctx context.Context) ([]types.SessionGroup, error)
	Upsert(ctx context.Context, group types.SessionGroup) error
}

func normalizeSession(session *types.Session) (*types.Session, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	next := session.Clone()
	next.ID = strings.TrimSpace(next.ID)
	if next.ID == "" {
		return nil, errors.New("session id is required")
	}
	next.Group = strings.TrimSpace(next.Group)
	if next.Group == "" {
		next.Group = types.SessionGroupDefault
	}
	if next.UpdatedAt.IsZero() {
		next.UpdatedAt = next.CreatedAt
	}
	return next, nil
}
