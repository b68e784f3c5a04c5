package app

import "testing"

func TestRowInteractionStateTransitions(t *testing.T) {
	var s RowInteractionState
	if s.ActionMenuOpen() || s.GroupModalOpen() {
		t.Fatalf("expected closed state initially")
	}
	if !s.SetActionMenuOpen(true) {
		t.Fatalf("expected opening the menu to report a change")
	}
	if s.SetActionMenuOpen(true) {
		t.Fatalf("expected repeated open to be a no-op")
	}
	if !s.OpenGroupModal() || s.OpenGroupModal() {
		t.Fatalf("expected modal to open exactly once")
	}
	if !s.CloseGroupModal() || s.CloseGroupModal() {
		t.Fatalf("expected modal to close exactly once")
	}
	if !s.ActionMenuOpen() {
		t.Fatalf("expected modal transitions to leave the menu flag alone")
	}
	s.Reset()
	if s.ActionMenuOpen() || s.GroupModalOpen() {
		t.Fatalf("expected reset to clear both flags")
	}
}
