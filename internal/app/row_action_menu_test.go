package app

import (
	"testing"

	"sidebar/internal/types"
)

func TestRowActionMenuItems(t *testing.T) {
	groups := []types.SessionGroup{
		{ID: types.SessionGroupDefault, Name: "Default"},
		{ID: types.SessionGroupPinned, Name: "Pinned"},
		{ID: "work", Name: "Work"},
	}
	menu := newRowActionMenu("s1", "Chat", true, types.SessionGroupDefault, groups)

	var labels []string
	for _, item := range menu.items {
		labels = append(labels, item.Label)
	}
	want := []string{"Unpin", "Move to Work", "New group…", "Copy session ID", "Remove"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, labels)
		}
	}
}

func TestRowActionMenuNavigation(t *testing.T) {
	groups := []types.SessionGroup{{ID: "work", Name: "Work"}}
	menu := newRowActionMenu("s1", "Chat", false, types.SessionGroupDefault, groups)

	menu.HandleKey(keyPress("up"))
	menu.HandleKey(keyPress("down"))
	handled, item := menu.HandleKey(keyPress("enter"))
	if !handled || item.Action != RowMenuMoveToGroup || item.GroupID != "work" {
		t.Fatalf("expected move to work, got %#v", item)
	}
	for i := 0; i < 10; i++ {
		menu.HandleKey(keyPress("j"))
	}
	if _, item := menu.HandleKey(keyPress("enter")); item.Action != RowMenuRemove {
		t.Fatalf("expected cursor to stop at the last item, got %#v", item)
	}
	if handled, _ := menu.HandleKey(keyPress("z")); handled {
		t.Fatalf("expected unrelated key to pass through")
	}
}
