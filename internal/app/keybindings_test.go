package app

import (
	"os"
	"path/filepath"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestLoadKeybindingsDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	bindings, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("LoadKeybindings: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandMenu); got != "." {
		t.Fatalf("unexpected default binding: %q", got)
	}
}

func TestLoadKeybindingsArrayOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	data := []byte(`[
  {"command":"ui.menu","key":"m"},
  {"command":"ui.unknown","key":"F5"}
]`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	bindings, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("LoadKeybindings: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandMenu); got != "m" {
		t.Fatalf("unexpected menu binding: %q", got)
	}
	if _, ok := bindings.Bindings()["ui.unknown"]; ok {
		t.Fatalf("expected unknown command to be ignored")
	}
}

func TestLoadKeybindingsMapOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	data := []byte(`{"ui.togglePin":"P","ui.copySessionID":"alt+y"}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	bindings, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("LoadKeybindings: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandTogglePin); got != "P" {
		t.Fatalf("unexpected pin binding: %q", got)
	}
	if got := bindings.KeyFor(KeyCommandCopySessionID); got != "alt+y" {
		t.Fatalf("unexpected copy id binding: %q", got)
	}
}

func TestLoadKeybindingsRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	if err := os.WriteFile(path, []byte(`{"ui.menu":`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadKeybindings(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSidebarKeyMapKeepsFixedAliases(t *testing.T) {
	keys := newSidebarKeyMap(NewKeybindings(map[string]string{KeyCommandCursorDown: "n"}))
	if !key.Matches(tea.KeyPressMsg{Code: 'j', Text: "j"}, keys.Down) {
		t.Fatalf("expected j to stay bound to cursor down")
	}
	if !key.Matches(tea.KeyPressMsg{Code: 'n', Text: "n"}, keys.Down) {
		t.Fatalf("expected override to bind cursor down")
	}
	if key.Matches(tea.KeyPressMsg{Code: tea.KeyDown}, keys.Down) {
		t.Fatalf("expected default key to be replaced by override")
	}
}
