package state

type ChatState struct {
	Generating map[string]bool
}

func (s ChatState) IsGenerating(sessionID string) bool {
	return s.Generating[sessionID]
}

func SetGenerating(sessionID string, generating bool) func(ChatState) ChatState {
	return func(s ChatState) ChatState {
		if s.Generating[sessionID] == generating {
			return s
		}
		next := make(map[string]bool, len(s.Generating)+1)
		for id, value := range s.Generating {
			if value {
				next[id] = true
			}
		}
		if generating {
			next[sessionID] = true
		} else {
			delete(next, sessionID)
		}
		s.Generating = next
		return s
	}
}
