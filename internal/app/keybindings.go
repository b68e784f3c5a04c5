package app

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
)

const (
	KeyCommandQuit          = "ui.quit"
	KeyCommandCursorUp      = "ui.cursorUp"
	KeyCommandCursorDown    = "ui.cursorDown"
	KeyCommandActivate      = "ui.activate"
	KeyCommandMenu          = "ui.menu"
	KeyCommandNewGroup      = "ui.newGroup"
	KeyCommandTogglePin     = "ui.togglePin"
	KeyCommandCopySessionID = "ui.copySessionID"
	KeyCommandRemoveSession = "ui.removeSession"
	KeyCommandDismiss       = "ui.dismiss"
)

var defaultKeybindingByCommand = map[string]string{
	KeyCommandQuit:          "q",
	KeyCommandCursorUp:      "up",
	KeyCommandCursorDown:    "down",
	KeyCommandActivate:      "enter",
	KeyCommandMenu:          ".",
	KeyCommandNewGroup:      "g",
	KeyCommandTogglePin:     "p",
	KeyCommandCopySessionID: "y",
	KeyCommandRemoveSession: "x",
	KeyCommandDismiss:       "esc",
}

// Keys that stay bound regardless of overrides.
var fixedKeysByCommand = map[string][]string{
	KeyCommandQuit:       {"ctrl+c"},
	KeyCommandCursorUp:   {"k"},
	KeyCommandCursorDown: {"j"},
}

var keybindingHelp = map[string]string{
	KeyCommandQuit:          "quit",
	KeyCommandCursorUp:      "up",
	KeyCommandCursorDown:    "down",
	KeyCommandActivate:      "open",
	KeyCommandMenu:          "actions",
	KeyCommandNewGroup:      "new group",
	KeyCommandTogglePin:     "pin",
	KeyCommandCopySessionID: "copy id",
	KeyCommandRemoveSession: "remove",
	KeyCommandDismiss:       "close",
}

type Keybindings struct {
	byCommand map[string]string
}

type keybindingEntry struct {
	Command string `json:"command"`
	Key     string `json:"key"`
}

func DefaultKeybindings() *Keybindings {
	return NewKeybindings(nil)
}

func NewKeybindings(overrides map[string]string) *Keybindings {
	byCommand := make(map[string]string, len(defaultKeybindingByCommand))
	for command, key := range defaultKeybindingByCommand {
		byCommand[command] = key
	}
	for command, key := range overrides {
		command = strings.TrimSpace(command)
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := defaultKeybindingByCommand[command]; !ok {
			continue
		}
		byCommand[command] = key
	}
	return &Keybindings{byCommand: byCommand}
}

// LoadKeybindings reads overrides from path. A missing or empty file yields
// the defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKeybindings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultKeybindings(), nil
		}
		return nil, err
	}
	overrides, err := parseKeybindingOverrides(data)
	if err != nil {
		return nil, err
	}
	return NewKeybindings(overrides), nil
}

func (k *Keybindings) KeyFor(command string) string {
	command = strings.TrimSpace(command)
	if k != nil {
		if key := strings.TrimSpace(k.byCommand[command]); key != "" {
			return key
		}
	}
	return defaultKeybindingByCommand[command]
}

// Binding returns the bubbles key binding for command.
func (k *Keybindings) Binding(command string) key.Binding {
	primary := k.KeyFor(command)
	if primary == "" {
		return key.NewBinding(key.WithDisabled())
	}
	keys := append([]string{primary}, fixedKeysByCommand[command]...)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(primary, keybindingHelp[command]),
	)
}

func (k *Keybindings) Bindings() map[string]string {
	out := make(map[string]string, len(defaultKeybindingByCommand))
	for _, command := range KnownKeybindingCommands() {
		out[command] = k.KeyFor(command)
	}
	return out
}

func parseKeybindingOverrides(data []byte) (map[string]string, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var entries []keybindingEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		out := map[string]string{}
		for _, entry := range entries {
			out[entry.Command] = entry.Key
		}
		return out, nil
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func KnownKeybindingCommands() []string {
	keys := make([]string, 0, len(defaultKeybindingByCommand))
	for command := range defaultKeybindingByCommand {
		keys = append(keys, command)
	}
	sort.Strings(keys)
	return keys
}

// sidebarKeyMap holds the resolved bindings the sidebar matches against.
type sidebarKeyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Menu     key.Binding
	NewGroup key.Binding
	Pin      key.Binding
	CopyID   key.Binding
	Remove   key.Binding
	Dismiss  key.Binding
}

func newSidebarKeyMap(bindings *Keybindings) sidebarKeyMap {
	if bindings == nil {
		bindings = DefaultKeybindings()
	}
	return sidebarKeyMap{
		Quit:     bindings.Binding(KeyCommandQuit),
		Up:       bindings.Binding(KeyCommandCursorUp),
		Down:     bindings.Binding(KeyCommandCursorDown),
		Activate: bindings.Binding(KeyCommandActivate),
		Menu:     bindings.Binding(KeyCommandMenu),
		NewGroup: bindings.Binding(KeyCommandNewGroup),
		Pin:      bindings.Binding(KeyCommandTogglePin),
		CopyID:   bindings.Binding(KeyCommandCopySessionID),
		Remove:   bindings.Binding(KeyCommandRemoveSession),
		Dismiss:  bindings.Binding(KeyCommandDismiss),
	}
}

func (k sidebarKeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Up, k.Activate, k.Menu, k.NewGroup, k.Pin, k.CopyID, k.Quit}
}
