package app

// RowInteractionState holds a row's transient UI flags. It never leaves the
// row and is cleared on unmount.
type RowInteractionState struct {
	actionMenuOpen bool
	groupModalOpen bool
}

func (s RowInteractionState) ActionMenuOpen() bool {
	return s.actionMenuOpen
}

func (s RowInteractionState) GroupModalOpen() bool {
	return s.groupModalOpen
}

func (s *RowInteractionState) SetActionMenuOpen(open bool) bool {
	if s.actionMenuOpen == open {
		return false
	}
	s.actionMenuOpen = open
	return true
}

func (s *RowInteractionState) OpenGroupModal() bool {
	if s.groupModalOpen {
		return false
	}
	s.groupModalOpen = true
	return true
}

func (s *RowInteractionState) CloseGroupModal() bool {
	if !s.groupModalOpen {
		return false
	}
	s.groupModalOpen = false
	return true
}

func (s *RowInteractionState) Reset() {
	*s = RowInteractionState{}
}
