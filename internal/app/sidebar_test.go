package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"sidebar/internal/state"
	"sidebar/internal/types"
)

type recordingActions struct {
	calls []string
}

func (a *recordingActions) record(call string) tea.Cmd {
	a.calls = append(a.calls, call)
	return nil
}

func (a *recordingActions) Activate(id string) tea.Cmd  { return a.record("activate:" + id) }
func (a *recordingActions) TogglePin(id string) tea.Cmd { return a.record("pin:" + id) }
func (a *recordingActions) MoveToGroup(id, groupID string) tea.Cmd {
	return a.record("move:" + id + ":" + groupID)
}
func (a *recordingActions) CreateGroupAndMove(id, name string) tea.Cmd {
	return a.record("group:" + id + ":" + name)
}
func (a *recordingActions) CopyID(id string) tea.Cmd { return a.record("copy:" + id) }
func (a *recordingActions) Remove(id string) tea.Cmd { return a.record("remove:" + id) }

func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, inner := range batch {
			out = append(out, collectMsgs(inner)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEsc}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func sidebarSessions() []*types.Session {
	older := testSession("b", "gpt-4", "anthropic")
	older.UpdatedAt = testNow.Add(-time.Hour)
	return []*types.Session{testSession("a", "gpt-4", "openai"), older}
}

func rowIDs(s *Sidebar) []string {
	ids := make([]string, 0, len(s.Rows()))
	for _, row := range s.Rows() {
		ids = append(ids, row.SessionID())
	}
	return ids
}

func TestSidebarMountsRowsInOrder(t *testing.T) {
	sessions := sidebarSessions()
	pinned := testSession("p", "gpt-4", "")
	pinned.Group = types.SessionGroupPinned
	pinned.UpdatedAt = testNow.Add(-24 * time.Hour)
	stores := newTestStores("gpt-3.5", append(sessions, pinned)...)

	s := NewSidebar(stores, WithDateRefresh(0))
	if got := strings.Join(rowIDs(s), ","); got != "p,a,b" {
		t.Fatalf("expected pinned first then recency, got %q", got)
	}
	if s.SelectedID() != "p" {
		t.Fatalf("expected first row selected, got %q", s.SelectedID())
	}
	if s.Init() != nil {
		t.Fatalf("expected no startup commands in client mode")
	}
}

func TestSidebarServerModeFetchesProviderPerRow(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	fetcher := &stubConfigFetcher{provider: map[string]string{"a": "openai", "b": "anthropic"}}
	s := NewSidebar(stores, WithDeploymentMode(types.DeploymentServer), WithConfigFetcher(fetcher), WithDateRefresh(0))

	before := s.render()
	if strings.Contains(before, "[openai]") {
		t.Fatalf("expected provider badges to be absent before fetch")
	}
	for _, msg := range collectMsgs(s.Init()) {
		s.Update(msg)
	}
	after := s.render()
	if !strings.Contains(after, "[openai]") || !strings.Contains(after, "[anthropic]") {
		t.Fatalf("expected fetched provider badges, got %q", after)
	}
	if len(fetcher.Calls()) != 2 {
		t.Fatalf("expected one fetch per row, got %v", fetcher.Calls())
	}
}

func TestSidebarDropsResultForUnknownRow(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	s := NewSidebar(stores, WithDeploymentMode(types.DeploymentServer), WithConfigFetcher(&stubConfigFetcher{}))
	s.Update(providerResolvedMsg{instance: 1 << 40, sessionID: "a", provider: "openai"})
	if props, _ := s.Row("a").Props(); props.Addon.String() != "[gpt-4]" {
		t.Fatalf("expected stray result to be ignored, got %q", props.Addon.String())
	}
}

func TestSidebarKeysDelegateToActions(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	actions := &recordingActions{}
	s := NewSidebar(stores, WithSessionActions(actions))

	s.Update(keyPress("down"))
	s.Update(keyPress("enter"))
	s.Update(keyPress("p"))
	s.Update(keyPress("y"))
	s.Update(keyPress("k"))
	s.Update(keyPress("x"))

	want := "activate:b,pin:b,copy:b,remove:a"
	if got := strings.Join(actions.calls, ","); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSidebarActionMenuTogglesAffordance(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	s := NewSidebar(stores, WithSessionActions(&recordingActions{}))

	s.Update(keyPress("."))
	if props, _ := s.Row("a").Props(); !props.ShowAction {
		t.Fatalf("expected action affordance while menu is open")
	}
	if !strings.Contains(s.render(), "Copy session ID") {
		t.Fatalf("expected menu items in view")
	}
	s.Update(keyPress("esc"))
	if props, _ := s.Row("a").Props(); props.ShowAction {
		t.Fatalf("expected esc to close the menu")
	}
}

func TestSidebarMenuPinReordersRows(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	s := NewSidebar(stores)

	s.Update(keyPress("down"))
	s.Update(keyPress("."))
	s.Update(keyPress("enter"))

	if got := strings.Join(rowIDs(s), ","); got != "b,a" {
		t.Fatalf("expected pinned b to move first, got %q", got)
	}
	if !types.SessionPinned(stores.Sessions.Get().SessionByID("b")) {
		t.Fatalf("expected b to be pinned")
	}
	if s.SelectedID() != "b" {
		t.Fatalf("expected selection to follow b, got %q", s.SelectedID())
	}
}

func TestSidebarCreateGroupModalMovesSession(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	s := NewSidebar(stores)

	s.Update(keyPress("g"))
	row := s.Row("a")
	if _, modal := row.Props(); !modal.Open {
		t.Fatalf("expected modal to open")
	}
	for _, r := range "Work" {
		s.Update(keyPress(string(r)))
	}
	_, cmd := s.Update(keyPress("enter"))
	for _, msg := range collectMsgs(cmd) {
		s.Update(msg)
	}

	if _, modal := row.Props(); modal.Open {
		t.Fatalf("expected modal to close after submit")
	}
	session := stores.Sessions.Get().SessionByID("a")
	group, ok := stores.Sessions.Get().Group(session.Group)
	if !ok || group.Name != "Work" {
		t.Fatalf("expected a to move into new group, got %q", session.Group)
	}
	if !strings.Contains(s.Status(), "Work") {
		t.Fatalf("expected status to mention the group, got %q", s.Status())
	}
}

func TestSidebarCreateGroupModalEscCancels(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	actions := &recordingActions{}
	s := NewSidebar(stores, WithSessionActions(actions))

	s.Update(keyPress("g"))
	s.Update(keyPress("z"))
	s.Update(keyPress("esc"))
	if _, modal := s.Row("a").Props(); modal.Open {
		t.Fatalf("expected esc to close the modal")
	}
	if len(actions.calls) != 0 {
		t.Fatalf("expected no action on cancel, got %v", actions.calls)
	}
}

func TestSidebarRecyclesRemovedRows(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	fetcher := &stubConfigFetcher{provider: map[string]string{"a": "openai", "b": "anthropic", "c": "google"}}
	s := NewSidebar(stores, WithDeploymentMode(types.DeploymentServer), WithConfigFetcher(fetcher), WithDateRefresh(0))
	initial := s.Init()
	removed := s.Row("b")

	stores.Sessions.Update(state.RemoveSession("b"))
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if removed.Mounted() || s.Row("b") != nil {
		t.Fatalf("expected b's row to be unmounted")
	}

	stores.Sessions.Update(state.UpsertSession(testSession("c", "gpt-4", "")))
	_, cmd := s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if s.Row("c") != removed {
		t.Fatalf("expected c to reuse the pooled row")
	}
	for _, msg := range collectMsgs(initial) {
		s.Update(msg)
	}
	if props, _ := s.Row("c").Props(); props.Addon.String() != "[gpt-4]" {
		t.Fatalf("expected b's stale result to be dropped, got %q", props.Addon.String())
	}
	for _, msg := range collectMsgs(cmd) {
		s.Update(msg)
	}
	if props, _ := s.Row("c").Props(); props.Addon.String() != "[google] [gpt-4]" {
		t.Fatalf("expected c's provider after refetch, got %q", props.Addon.String())
	}
}

func TestSidebarRemovedSelectionMovesToNeighbour(t *testing.T) {
	stores := newTestStores("gpt-3.5", sidebarSessions()...)
	s := NewSidebar(stores)
	s.Update(keyPress("down"))
	stores.Sessions.Update(state.RemoveSession("b"))
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if s.SelectedID() != "a" {
		t.Fatalf("expected selection to fall back to a, got %q", s.SelectedID())
	}
}

func TestSidebarQuit(t *testing.T) {
	s := NewSidebar(newTestStores("gpt-3.5"))
	_, cmd := s.Update(keyPress("q"))
	msgs := collectMsgs(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected quit message, got %v", msgs)
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", msgs[0])
	}
	if !strings.Contains(s.render(), "No sessions.") {
		t.Fatalf("expected empty state")
	}
}

func TestSidebarDateTickRefreshesRelativeDates(t *testing.T) {
	orig := listItemNow
	t.Cleanup(func() { listItemNow = orig })
	now := testNow
	listItemNow = func() time.Time { return now }

	stores := newTestStores("gpt-3.5", testSession("s1", "gpt-3.5", ""))
	s := NewSidebar(stores, WithDateRefresh(time.Hour))
	if out := s.render(); !strings.Contains(out, "just now") {
		t.Fatalf("expected fresh date, got %q", out)
	}
	row := s.Row("s1")
	renders := row.Renders()

	now = testNow.Add(30 * time.Second)
	_, cmd := s.Update(dateTickMsg(now))
	if cmd == nil {
		t.Fatalf("expected the tick to be rescheduled")
	}
	s.render()
	if row.Renders() != renders {
		t.Fatalf("expected no repaint while the date label is unchanged, got %d renders", row.Renders())
	}

	now = testNow.Add(3 * time.Hour)
	s.Update(dateTickMsg(now))
	out := s.render()
	if !strings.Contains(out, "3h ago") || strings.Contains(out, "just now") {
		t.Fatalf("expected refreshed date, got %q", out)
	}
	if row.Renders() != renders+1 {
		t.Fatalf("expected exactly one repaint, got %d", row.Renders()-renders)
	}
}
