package app

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"sidebar/internal/logging"
	"sidebar/internal/state"
	"sidebar/internal/store"
	"sidebar/internal/types"
)

// SessionActions performs the mutations a row delegates outward. Each method
// applies the change to the stores and returns a command for any follow-up
// work such as persistence.
type SessionActions interface {
	Activate(id string) tea.Cmd
	TogglePin(id string) tea.Cmd
	MoveToGroup(id, groupID string) tea.Cmd
	CreateGroupAndMove(id, name string) tea.Cmd
	CopyID(id string) tea.Cmd
	Remove(id string) tea.Cmd
}

type sessionActionMsg struct {
	status string
	err    error
}

var errGroupNameRequired = errors.New("group name is required")

type storeSessionActions struct {
	stores Stores
	repo   store.Repository
	logger logging.Logger
	now    func() time.Time
	newID  func() string
	copy   func(string) (clipboardMethod, error)
}

// NewSessionActions returns actions that mutate stores and, when repo is not
// nil, persist each change.
func NewSessionActions(stores Stores, repo store.Repository, logger logging.Logger) SessionActions {
	if logger == nil {
		logger = logging.Nop()
	}
	return &storeSessionActions{
		stores: stores,
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		copy:   copyTextToClipboard,
	}
}

func (a *storeSessionActions) Activate(id string) tea.Cmd {
	if a.stores.Sessions.Get().SessionByID(id) == nil {
		return nil
	}
	a.stores.Sessions.Update(state.SetActive(id))
	return nil
}

func (a *storeSessionActions) TogglePin(id string) tea.Cmd {
	current := a.stores.Sessions.Get().SessionByID(id)
	if current == nil {
		return nil
	}
	pinned := !types.SessionPinned(current)
	a.stores.Sessions.Update(state.SetPinned(id, pinned, a.now().UTC()))
	status := "session pinned"
	if !pinned {
		status = "session unpinned"
	}
	return a.persistSession(id, status)
}

func (a *storeSessionActions) MoveToGroup(id, groupID string) tea.Cmd {
	sessions := a.stores.Sessions.Get()
	if sessions.SessionByID(id) == nil {
		return nil
	}
	group, ok := sessions.Group(groupID)
	if !ok {
		return statusCmd("", errors.New("unknown group "+groupID))
	}
	a.stores.Sessions.Update(state.MoveToGroup(id, group.ID, a.now().UTC()))
	return a.persistSession(id, "moved to "+group.Name)
}

func (a *storeSessionActions) CreateGroupAndMove(id, name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return statusCmd("", errGroupNameRequired)
	}
	if a.stores.Sessions.Get().SessionByID(id) == nil {
		return nil
	}
	group := types.SessionGroup{
		ID:   a.newID(),
		Name: name,
		Sort: len(a.stores.Sessions.Get().Groups),
	}
	a.stores.Sessions.Update(state.AddGroup(group))
	a.stores.Sessions.Update(state.MoveToGroup(id, group.ID, a.now().UTC()))
	a.logger.Info("group_created", logging.F("group_id", group.ID), logging.F("session_id", id))

	session := a.stores.Sessions.Get().SessionByID(id).Clone()
	return a.persistWithStatus("created group "+name, func(ctx context.Context, repo store.Repository) error {
		if err := repo.Groups().Upsert(ctx, group); err != nil {
			return err
		}
		_, err := repo.Sessions().Upsert(ctx, session)
		return err
	})
}

func (a *storeSessionActions) CopyID(id string) tea.Cmd {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	copyFn := a.copy
	return func() tea.Msg {
		if _, err := copyFn(id); err != nil {
			return sessionActionMsg{err: errors.New("copy failed: " + err.Error())}
		}
		return sessionActionMsg{status: "copied session id"}
	}
}

func (a *storeSessionActions) Remove(id string) tea.Cmd {
	if a.stores.Sessions.Get().SessionByID(id) == nil {
		return nil
	}
	a.stores.Sessions.Update(state.RemoveSession(id))
	a.stores.Chat.Update(state.SetGenerating(id, false))
	a.logger.Info("session_removed", logging.F("session_id", id))
	return a.persistWithStatus("session removed", func(ctx context.Context, repo store.Repository) error {
		err := repo.Sessions().Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	})
}

func (a *storeSessionActions) persistSession(id, status string) tea.Cmd {
	session := a.stores.Sessions.Get().SessionByID(id)
	if session == nil {
		return nil
	}
	snapshot := session.Clone()
	return a.persistWithStatus(status, func(ctx context.Context, repo store.Repository) error {
		_, err := repo.Sessions().Upsert(ctx, snapshot)
		return err
	})
}

func (a *storeSessionActions) persistWithStatus(status string, fn func(context.Context, store.Repository) error) tea.Cmd {
	repo := a.repo
	if repo == nil {
		return statusCmd(status, nil)
	}
	logger := a.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx, repo); err != nil {
			logger.Error("session_persist_failed", logging.Err(err))
			return sessionActionMsg{err: err}
		}
		return sessionActionMsg{status: status}
	}
}

func statusCmd(status string, err error) tea.Cmd {
	if status == "" && err == nil {
		return nil
	}
	return func() tea.Msg {
		return sessionActionMsg{status: status, err: err}
	}
}
