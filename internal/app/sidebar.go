package app

import (
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"sidebar/internal/logging"
	"sidebar/internal/state"
	"sidebar/internal/types"
)

const (
	minSidebarWidth  = 24
	minMenuWidth     = 18
	maxMenuWidth     = 40
	rowPoolLimit     = 16
	dateTickInterval = time.Minute
)

type dateTickMsg time.Time

func dateTickCmd(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return dateTickMsg(t)
	})
}

// Sidebar hosts the session rows. It mounts, unmounts and recycles rows as
// the session order changes and routes messages to the row they belong to.
type Sidebar struct {
	stores Stores
	deps   rowDeps
	keys   sidebarKeyMap

	rows       []*SessionRow
	byID       map[string]*SessionRow
	byInstance map[uint64]*SessionRow
	pool       []*SessionRow
	orderDirty bool
	unsubOrder func()

	selectedID string
	menu       *RowActionMenu
	modalRow   *SessionRow
	status     string
	statusErr  bool
	width      int
	height     int
	initCmds   []tea.Cmd
	dateTick   time.Duration
}

type Option func(*Sidebar)

func WithDeploymentMode(mode types.DeploymentMode) Option {
	return func(s *Sidebar) { s.deps.mode = mode }
}

func WithConfigFetcher(fetcher SessionConfigFetcher) Option {
	return func(s *Sidebar) { s.deps.fetcher = fetcher }
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Sidebar) {
		if logger != nil {
			s.deps.logger = logger
		}
	}
}

func WithProviderBadgeColors(colors map[string]string) Option {
	return func(s *Sidebar) { s.deps.badgeColors = colors }
}

func WithSessionActions(actions SessionActions) Option {
	return func(s *Sidebar) { s.deps.actions = actions }
}

// WithDateRefresh sets how often relative row dates are re-evaluated. A
// non-positive interval disables the refresh.
func WithDateRefresh(every time.Duration) Option {
	return func(s *Sidebar) { s.dateTick = every }
}

func WithKeybindings(bindings *Keybindings) Option {
	return func(s *Sidebar) { s.keys = newSidebarKeyMap(bindings) }
}

func NewSidebar(stores Stores, opts ...Option) *Sidebar {
	s := &Sidebar{
		stores:     stores,
		deps:       rowDeps{stores: stores, mode: types.DeploymentClient, logger: logging.Nop()},
		keys:       newSidebarKeyMap(nil),
		byID:       map[string]*SessionRow{},
		byInstance: map[uint64]*SessionRow{},
		width:      minSidebarWidth * 2,
		dateTick:   dateTickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deps.actions == nil {
		s.deps.actions = NewSessionActions(stores, nil, s.deps.logger)
	}
	s.deps.logger = s.deps.logger.With(logging.F("component", "sidebar"))

	var order []string
	order, s.unsubOrder = state.Select(stores.Sessions, state.SessionState.Order, equalOrder, func([]string) {
		s.orderDirty = true
	})
	s.initCmds = s.reconcile(order)
	return s
}

func equalOrder(a, b []string) bool {
	return slices.Equal(a, b)
}

// Run starts the sidebar as a full-screen program.
func Run(sidebar *Sidebar) error {
	defer sidebar.Close()
	_, err := tea.NewProgram(sidebar).Run()
	return err
}

func (s *Sidebar) Init() tea.Cmd {
	cmds := append(s.initCmds, dateTickCmd(s.dateTick))
	s.initCmds = nil
	return tea.Batch(cmds...)
}

// Close unmounts every row and drops the order subscription.
func (s *Sidebar) Close() {
	if s.unsubOrder != nil {
		s.unsubOrder()
		s.unsubOrder = nil
	}
	for _, row := range s.rows {
		row.Unmount()
	}
	s.rows = nil
	s.byID = map[string]*SessionRow{}
}

func (s *Sidebar) Rows() []*SessionRow {
	return s.rows
}

func (s *Sidebar) Row(sessionID string) *SessionRow {
	return s.byID[sessionID]
}

func (s *Sidebar) SelectedID() string {
	return s.selectedID
}

func (s *Sidebar) DeploymentMode() types.DeploymentMode {
	return s.deps.mode
}

func (s *Sidebar) Status() string {
	return s.status
}

func (s *Sidebar) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case providerResolvedMsg:
		if row, ok := s.byInstance[msg.instance]; ok {
			row.Update(msg)
		}
	case dateTickMsg:
		for _, row := range s.rows {
			row.RefreshDate()
		}
		cmds = append(cmds, dateTickCmd(s.dateTick))
	case sessionActionMsg:
		s.setStatus(msg.status, msg.err)
	case tea.KeyPressMsg:
		cmds = append(cmds, s.handleKey(msg))
	}
	if s.orderDirty {
		s.orderDirty = false
		cmds = append(cmds, s.reconcile(s.stores.Sessions.Get().Order())...)
	}
	return s, tea.Batch(cmds...)
}

func (s *Sidebar) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.modalRow != nil {
		modal := s.modalRow.Modal()
		if modal == nil {
			s.modalRow = nil
		} else {
			cmd := modal.Update(msg)
			if s.modalRow.Modal() == nil {
				s.modalRow = nil
			}
			return cmd
		}
	}
	if s.menu != nil {
		return s.handleMenuKey(msg)
	}

	row := s.selectedRow()
	switch {
	case key.Matches(msg, s.keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.keys.Up):
		s.moveSelection(-1)
	case key.Matches(msg, s.keys.Down):
		s.moveSelection(1)
	case row == nil:
		return nil
	case key.Matches(msg, s.keys.Activate):
		return s.deps.actions.Activate(row.SessionID())
	case key.Matches(msg, s.keys.Menu):
		s.openMenu(row)
	case key.Matches(msg, s.keys.NewGroup):
		s.openGroupModal(row)
	case key.Matches(msg, s.keys.Pin):
		return s.deps.actions.TogglePin(row.SessionID())
	case key.Matches(msg, s.keys.CopyID):
		return s.deps.actions.CopyID(row.SessionID())
	case key.Matches(msg, s.keys.Remove):
		return s.deps.actions.Remove(row.SessionID())
	}
	return nil
}

func (s *Sidebar) handleMenuKey(msg tea.KeyPressMsg) tea.Cmd {
	row := s.byID[s.menu.SessionID()]
	if row == nil {
		s.menu = nil
		return nil
	}
	if key.Matches(msg, s.keys.Dismiss) || key.Matches(msg, s.keys.Menu) {
		s.closeMenu(row)
		return nil
	}
	handled, item := s.menu.HandleKey(msg)
	if !handled || item.Action == RowMenuNone {
		return nil
	}
	s.closeMenu(row)
	id := row.SessionID()
	switch item.Action {
	case RowMenuTogglePin:
		return s.deps.actions.TogglePin(id)
	case RowMenuMoveToGroup:
		return s.deps.actions.MoveToGroup(id, item.GroupID)
	case RowMenuNewGroup:
		s.openGroupModal(row)
	case RowMenuCopyID:
		return s.deps.actions.CopyID(id)
	case RowMenuRemove:
		return s.deps.actions.Remove(id)
	}
	return nil
}

func (s *Sidebar) openMenu(row *SessionRow) {
	props, _ := row.Props()
	props.Actions.OpenMenu()
	groups := s.stores.Sessions.Get().Groups
	s.menu = newRowActionMenu(row.SessionID(), props.Title, props.Pinned, props.Actions.Group, groups)
}

func (s *Sidebar) closeMenu(row *SessionRow) {
	props, _ := row.Props()
	props.Actions.CloseMenu()
	s.menu = nil
}

func (s *Sidebar) openGroupModal(row *SessionRow) {
	props, _ := row.Props()
	props.Actions.OpenCreateGroupModal()
	if row.Modal() != nil {
		s.modalRow = row
	}
}

func (s *Sidebar) selectedRow() *SessionRow {
	return s.byID[s.selectedID]
}

func (s *Sidebar) moveSelection(delta int) {
	if len(s.rows) == 0 {
		return
	}
	index := clamp(s.selectedIndex()+delta, 0, len(s.rows)-1)
	s.selectedID = s.rows[index].SessionID()
}

func (s *Sidebar) selectedIndex() int {
	for i, row := range s.rows {
		if row.SessionID() == s.selectedID {
			return i
		}
	}
	return 0
}

func (s *Sidebar) setStatus(status string, err error) {
	if err != nil {
		s.status = err.Error()
		s.statusErr = true
		return
	}
	if status != "" {
		s.status = status
		s.statusErr = false
	}
}

// reconcile lines the mounted rows up with order. Rows whose session left the
// list are rebound to newly added sessions before new rows are created.
func (s *Sidebar) reconcile(order []string) []tea.Cmd {
	prevIndex := s.selectedIndex()
	wanted := make(map[string]struct{}, len(order))
	for _, id := range order {
		wanted[id] = struct{}{}
	}
	var released []*SessionRow
	for id, row := range s.byID {
		if _, ok := wanted[id]; !ok {
			released = append(released, row)
			delete(s.byID, id)
		}
	}

	var cmds []tea.Cmd
	rows := make([]*SessionRow, 0, len(order))
	for _, id := range order {
		row, ok := s.byID[id]
		if !ok {
			row, released = s.acquireRow(released)
			if cmd := row.Bind(id); cmd != nil {
				cmds = append(cmds, cmd)
			}
			s.byID[id] = row
		}
		rows = append(rows, row)
	}
	for _, row := range released {
		row.Unmount()
		if len(s.pool) < rowPoolLimit {
			s.pool = append(s.pool, row)
		} else {
			delete(s.byInstance, row.instance)
		}
	}
	s.rows = rows

	if s.menu != nil && s.byID[s.menu.SessionID()] == nil {
		s.menu = nil
	}
	if s.modalRow != nil && s.modalRow.Modal() == nil {
		s.modalRow = nil
	}
	if _, ok := s.byID[s.selectedID]; !ok {
		s.selectedID = ""
		if len(rows) > 0 {
			s.selectedID = rows[clamp(prevIndex, 0, len(rows)-1)].SessionID()
		}
	}
	return cmds
}

func (s *Sidebar) acquireRow(released []*SessionRow) (*SessionRow, []*SessionRow) {
	if n := len(released); n > 0 {
		return released[n-1], released[:n-1]
	}
	if n := len(s.pool); n > 0 {
		row := s.pool[n-1]
		s.pool = s.pool[:n-1]
		return row, released
	}
	row := newSessionRow(s.deps)
	s.byInstance[row.instance] = row
	return row, released
}

func (s *Sidebar) View() tea.View {
	view := tea.NewView(s.render())
	view.AltScreen = true
	return view
}

func (s *Sidebar) render() string {
	width := max(minSidebarWidth, s.width)
	rowWidth := width - 2
	lines := []string{headerStyle.Render("Sessions")}
	if len(s.rows) == 0 {
		lines = append(lines, helpStyle.Render("No sessions."))
	}
	for _, row := range s.rows {
		marker := "  "
		if row.SessionID() == s.selectedID {
			marker = selectedStyle.Render("▌") + " "
		}
		lines = append(lines, indentEachLine(row.View(rowWidth), marker))
		if s.menu != nil && s.menu.SessionID() == row.SessionID() {
			lines = append(lines, s.menu.View(rowWidth))
		}
	}
	if s.modalRow != nil {
		if modal := s.modalRow.Modal(); modal != nil {
			lines = append(lines, modal.View(width))
		}
	}
	if s.status != "" {
		style := statusStyle
		if s.statusErr {
			style = statusErrorStyle
		}
		lines = append(lines, style.Render(truncateToWidth(s.status, width)))
	}
	lines = append(lines, s.helpLine(width))
	return strings.Join(lines, "\n")
}

func (s *Sidebar) helpLine(width int) string {
	parts := make([]string, 0, 8)
	for _, binding := range s.keys.helpBindings() {
		if !binding.Enabled() {
			continue
		}
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return helpStyle.Render(truncateToWidth(strings.Join(parts, " • "), width))
}

func indentEachLine(block, prefix string) string {
	pad := strings.Repeat(" ", xansi.StringWidth(prefix))
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
