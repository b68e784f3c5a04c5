package state

import "strings"

type AgentState struct {
	DefaultModel string
}

func SetDefaultModel(model string) func(AgentState) AgentState {
	return func(s AgentState) AgentState {
		s.DefaultModel = strings.TrimSpace(model)
		return s
	}
}
