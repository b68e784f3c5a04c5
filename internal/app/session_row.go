package app

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"sidebar/internal/logging"
	"sidebar/internal/state"
	"sidebar/internal/types"
)

var rowInstanceSeq atomic.Uint64

// ListItemProps is the render contract handed to the presentational row.
type ListItemProps struct {
	Active           bool
	Loading          bool
	Pinned           bool
	Title            string
	Description      string
	Avatar           string
	AvatarBackground string
	Date             time.Time
	Addon            *AddonView
	Actions          RowActions
	ShowAction       bool
}

type GroupModalProps struct {
	SessionID string
	Open      bool
	OnCancel  func()
}

// RowActions are the capabilities a row grants to its action area.
type RowActions struct {
	SessionID             string
	Group                 string
	OpenMenu              func()
	CloseMenu             func()
	OpenCreateGroupModal  func()
	CloseCreateGroupModal func()
}

type rowDeps struct {
	stores      Stores
	mode        types.DeploymentMode
	fetcher     SessionConfigFetcher
	actions     SessionActions
	logger      logging.Logger
	badgeColors map[string]string
}

// SessionRow composes one sidebar entry from gated store subscriptions, the
// provider resolver and its own interaction state. All methods must be called
// from the bubbletea update loop.
type SessionRow struct {
	instance    uint64
	deps        rowDeps
	id          string
	mounted     bool
	unsubscribe []func()

	snapshot     SessionSnapshot
	active       bool
	generating   bool
	defaultModel string

	resolver    *ProviderResolver
	addon       addonMemo
	interaction RowInteractionState
	modal       *CreateGroupModal
	actions     RowActions

	dirty       bool
	cached      string
	cachedWidth int
	cachedDate  string
	renders     int
}

func newSessionRow(deps rowDeps) *SessionRow {
	if deps.logger == nil {
		deps.logger = logging.Nop()
	}
	instance := rowInstanceSeq.Add(1)
	row := &SessionRow{
		instance: instance,
		deps:     deps,
		resolver: newProviderResolver(instance, deps.mode, deps.fetcher, deps.logger),
	}
	row.actions = RowActions{
		OpenMenu:              func() { row.setActionMenuOpen(true) },
		CloseMenu:             func() { row.setActionMenuOpen(false) },
		OpenCreateGroupModal:  row.openGroupModal,
		CloseCreateGroupModal: row.closeGroupModal,
	}
	return row
}

// Bind mounts the row for sessionID, or rebinds a mounted row to a different
// session. The returned command performs the provider fetch, if any.
func (r *SessionRow) Bind(sessionID string) tea.Cmd {
	if r.mounted && r.id == sessionID {
		return nil
	}
	r.dropSubscriptions()
	r.id = sessionID
	r.mounted = true
	r.interaction.Reset()
	r.modal = nil
	r.addon.reset()
	r.subscribe()
	r.dirty = true
	return r.resolver.Bind(sessionID)
}

func (r *SessionRow) subscribe() {
	stores := r.deps.stores
	var unsub func()
	r.snapshot, unsub = state.Select(stores.Sessions, SelectSessionSnapshot(r.id), EqualSessionSnapshot, func(next SessionSnapshot) {
		r.snapshot = next
		r.dirty = true
	})
	r.unsubscribe = append(r.unsubscribe, unsub)

	r.active, unsub = state.Select(stores.Sessions, selectActive(r.id), state.Equal[bool], func(next bool) {
		r.active = next
		r.dirty = true
	})
	r.unsubscribe = append(r.unsubscribe, unsub)

	r.generating, unsub = state.Select(stores.Chat, selectGenerating(r.id), state.Equal[bool], func(next bool) {
		r.generating = next
		r.dirty = true
	})
	r.unsubscribe = append(r.unsubscribe, unsub)

	r.defaultModel, unsub = state.Select(stores.Agent, selectDefaultModel, state.Equal[string], func(next string) {
		r.defaultModel = next
		r.dirty = true
	})
	r.unsubscribe = append(r.unsubscribe, unsub)
}

func (r *SessionRow) dropSubscriptions() {
	for _, unsub := range r.unsubscribe {
		unsub()
	}
	r.unsubscribe = nil
}

// Unmount releases subscriptions and abandons any pending provider fetch.
func (r *SessionRow) Unmount() {
	if !r.mounted {
		return
	}
	r.dropSubscriptions()
	r.resolver.Release()
	r.interaction.Reset()
	r.modal = nil
	r.mounted = false
}

func (r *SessionRow) SessionID() string {
	return r.id
}

func (r *SessionRow) Mounted() bool {
	return r.mounted
}

func (r *SessionRow) Renders() int {
	return r.renders
}

func (r *SessionRow) Interaction() RowInteractionState {
	return r.interaction
}

// Update handles messages addressed to this row. It reports whether the row
// needs to be painted again.
func (r *SessionRow) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case providerResolvedMsg:
		if !r.mounted {
			return false
		}
		if r.resolver.Apply(msg) {
			r.dirty = true
			return true
		}
	}
	return false
}

func (r *SessionRow) setActionMenuOpen(open bool) {
	if r.interaction.SetActionMenuOpen(open) {
		r.dirty = true
	}
}

func (r *SessionRow) openGroupModal() {
	if !r.mounted || !r.interaction.OpenGroupModal() {
		return
	}
	r.modal = NewCreateGroupModal(r.id, r.deps.actions, r.closeGroupModal)
}

func (r *SessionRow) closeGroupModal() {
	if r.interaction.CloseGroupModal() {
		r.modal = nil
	}
}

// Modal returns the mounted create-group modal, or nil while it is closed.
func (r *SessionRow) Modal() *CreateGroupModal {
	return r.modal
}

func (r *SessionRow) Props() (ListItemProps, GroupModalProps) {
	modal := GroupModalProps{
		SessionID: r.id,
		Open:      r.interaction.GroupModalOpen(),
		OnCancel:  r.closeGroupModal,
	}
	actions := r.actions
	actions.SessionID = r.id
	actions.Group = r.snapshot.Group
	if r.snapshot.Missing {
		return ListItemProps{Actions: actions}, modal
	}
	provider := r.resolver.Resolve(r.snapshot.ClientProvider)
	return ListItemProps{
		Active:           r.active,
		Loading:          r.active && r.generating,
		Pinned:           r.snapshot.Pinned,
		Title:            r.snapshot.Title,
		Description:      r.snapshot.Description,
		Avatar:           r.snapshot.Avatar,
		AvatarBackground: r.snapshot.AvatarBackground,
		Date:             r.snapshot.UpdatedAt,
		Addon:            r.addon.Get(r.snapshot.Model, r.defaultModel, provider),
		Actions:          actions,
		ShowAction:       r.interaction.ActionMenuOpen(),
	}, modal
}

// View paints the row, reusing the previous output until a gated input
// changes.
func (r *SessionRow) View(width int) string {
	if !r.dirty && r.cachedWidth == width && r.renders > 0 {
		return r.cached
	}
	props, _ := r.Props()
	r.cached = renderListItem(props, width, r.deps.badgeColors)
	r.cachedWidth = width
	r.cachedDate = formatSince(props.Date)
	r.dirty = false
	r.renders++
	return r.cached
}

// RefreshDate marks the row for repaint when its relative date label no
// longer matches the one last painted.
func (r *SessionRow) RefreshDate() bool {
	if !r.mounted || r.dirty || r.renders == 0 || r.snapshot.Missing {
		return false
	}
	if formatSince(r.snapshot.UpdatedAt) == r.cachedDate {
		return false
	}
	r.dirty = true
	return true
}
