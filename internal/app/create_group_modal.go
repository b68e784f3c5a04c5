package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const createGroupNameLimit = 64

// CreateGroupModal asks for a group name and moves the session into the new
// group. A fresh modal is built every time it opens.
type CreateGroupModal struct {
	sessionID string
	actions   SessionActions
	onCancel  func()
	input     textinput.Model
	err       string
}

func NewCreateGroupModal(sessionID string, actions SessionActions, onCancel func()) *CreateGroupModal {
	input := textinput.New()
	input.Placeholder = "group name"
	input.CharLimit = createGroupNameLimit
	input.Focus()
	return &CreateGroupModal{
		sessionID: sessionID,
		actions:   actions,
		onCancel:  onCancel,
		input:     input,
	}
}

func (m *CreateGroupModal) SessionID() string {
	return m.sessionID
}

func (m *CreateGroupModal) Value() string {
	return m.input.Value()
}

func (m *CreateGroupModal) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc":
			m.cancel()
			return nil
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = ""
	return cmd
}

func (m *CreateGroupModal) submit() tea.Cmd {
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.err = errGroupNameRequired.Error()
		return nil
	}
	var cmd tea.Cmd
	if m.actions != nil {
		cmd = m.actions.CreateGroupAndMove(m.sessionID, name)
	}
	m.cancel()
	return cmd
}

func (m *CreateGroupModal) cancel() {
	if m.onCancel != nil {
		m.onCancel()
	}
}

func (m *CreateGroupModal) View(width int) string {
	contentWidth := max(minSidebarWidth, width) - 4
	m.input.SetWidth(max(1, contentWidth-2))
	lines := []string{
		headerStyle.Render("New group"),
		m.input.View(),
	}
	if m.err != "" {
		lines = append(lines, statusErrorStyle.Render(truncateToWidth(m.err, contentWidth)))
	}
	lines = append(lines, helpStyle.Render("enter create • esc cancel"))
	return modalBorderStyle.Width(contentWidth + 2).Render(strings.Join(lines, "\n"))
}
