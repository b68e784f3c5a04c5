package app

import "strings"

// AddonView is the badge cluster under a session title. It exists only for
// sessions whose model differs from the default model.
type AddonView struct {
	Provider string
	Model    string
}

func (a *AddonView) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if a.Provider != "" {
		parts = append(parts, "["+a.Provider+"]")
	}
	parts = append(parts, "["+a.Model+"]")
	return strings.Join(parts, " ")
}

// DeriveAddon returns nil when model is the default model, even if a
// provider is known.
func DeriveAddon(model, defaultModel, provider string) *AddonView {
	if model == defaultModel {
		return nil
	}
	return &AddonView{Provider: provider, Model: model}
}

type addonKey struct {
	model        string
	defaultModel string
	provider     string
}

type addonMemo struct {
	key      addonKey
	value    *AddonView
	valid    bool
	computes int
}

func (m *addonMemo) Get(model, defaultModel, provider string) *AddonView {
	key := addonKey{model: model, defaultModel: defaultModel, provider: provider}
	if m.valid && m.key == key {
		return m.value
	}
	m.key = key
	m.value = DeriveAddon(model, defaultModel, provider)
	m.valid = true
	m.computes++
	return m.value
}

func (m *addonMemo) reset() {
	*m = addonMemo{computes: m.computes}
}
