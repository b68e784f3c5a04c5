package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"sidebar/internal/types"
)

type RowMenuAction int

const (
	RowMenuNone RowMenuAction = iota
	RowMenuTogglePin
	RowMenuMoveToGroup
	RowMenuNewGroup
	RowMenuCopyID
	RowMenuRemove
)

type rowMenuItem struct {
	Label   string
	Action  RowMenuAction
	GroupID string
}

// RowActionMenu lists the actions available for one session row.
type RowActionMenu struct {
	sessionID string
	title     string
	items     []rowMenuItem
	selected  int
}

func newRowActionMenu(sessionID, title string, pinned bool, currentGroup string, groups []types.SessionGroup) *RowActionMenu {
	pinLabel := "Pin"
	if pinned {
		pinLabel = "Unpin"
	}
	items := []rowMenuItem{{Label: pinLabel, Action: RowMenuTogglePin}}
	for _, group := range groups {
		if group.ID == currentGroup || group.ID == types.SessionGroupPinned {
			continue
		}
		items = append(items, rowMenuItem{
			Label:   "Move to " + group.Name,
			Action:  RowMenuMoveToGroup,
			GroupID: group.ID,
		})
	}
	items = append(items,
		rowMenuItem{Label: "New group…", Action: RowMenuNewGroup},
		rowMenuItem{Label: "Copy session ID", Action: RowMenuCopyID},
		rowMenuItem{Label: "Remove", Action: RowMenuRemove},
	)
	return &RowActionMenu{sessionID: sessionID, title: title, items: items}
}

func (m *RowActionMenu) SessionID() string {
	return m.sessionID
}

// HandleKey reports whether the key was consumed and the chosen item, if any.
func (m *RowActionMenu) HandleKey(msg tea.KeyPressMsg) (bool, rowMenuItem) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return true, rowMenuItem{}
	case "down", "j":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return true, rowMenuItem{}
	case "enter":
		if m.selected < 0 || m.selected >= len(m.items) {
			return true, rowMenuItem{}
		}
		return true, m.items[m.selected]
	}
	return false, rowMenuItem{}
}

func (m *RowActionMenu) View(maxWidth int) string {
	width := m.menuWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	contentWidth := max(1, width-2)
	header := " " + padToWidth(truncateToWidth("Session: "+m.title, contentWidth), contentWidth) + " "
	lines := []string{contextMenuHeaderStyle.Render(header)}
	for i, item := range m.items {
		line := " " + padToWidth(truncateToWidth(item.Label, contentWidth), contentWidth) + " "
		switch {
		case i == m.selected:
			line = menuSelectedStyle.Render(line)
		case item.Action == RowMenuRemove:
			line = menuDangerStyle.Render(line)
		default:
			line = menuDropStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return indentBlock(strings.Join(lines, "\n"), listItemAvatarWidth+listItemGutter)
}

func (m *RowActionMenu) menuWidth() int {
	width := xansi.StringWidth("Session: " + m.title)
	for _, item := range m.items {
		if w := xansi.StringWidth(item.Label); w > width {
			width = w
		}
	}
	return clamp(width+2, minMenuWidth, maxMenuWidth)
}
