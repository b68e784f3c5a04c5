package providers

import "strings"

const defaultBadgeColor = "245"

type Definition struct {
	Name       string
	Label      string
	BadgeColor string
	Aliases    []string
}

var registry = []Definition{
	{Name: "openai", Label: "OpenAI", BadgeColor: "42"},
	{Name: "anthropic", Label: "Anthropic", BadgeColor: "208", Aliases: []string{"claude"}},
	{Name: "google", Label: "Google", BadgeColor: "33", Aliases: []string{"gemini"}},
	{Name: "azure", Label: "Azure", BadgeColor: "39"},
	{Name: "bedrock", Label: "Bedrock", BadgeColor: "214"},
	{Name: "ollama", Label: "Ollama", BadgeColor: "250"},
	{Name: "openrouter", Label: "OpenRouter", BadgeColor: "99"},
	{Name: "deepseek", Label: "DeepSeek", BadgeColor: "69"},
	{Name: "mistral", Label: "Mistral", BadgeColor: "202"},
	{Name: "groq", Label: "Groq", BadgeColor: "167"},
}

var registryByName = buildByName(registry)

func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func All() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, def := range registry {
		out = append(out, cloneDefinition(def))
	}
	return out
}

func Lookup(name string) (Definition, bool) {
	def, ok := registryByName[Normalize(name)]
	if !ok {
		return Definition{}, false
	}
	return cloneDefinition(def), true
}

// BadgeColor resolves the colour of a provider tag. Overrides are keyed by
// provider name in any case and win over the registry.
func BadgeColor(provider string, overrides map[string]string) string {
	key := Normalize(provider)
	if key == "" {
		return defaultBadgeColor
	}
	for name, color := range overrides {
		if Normalize(name) == key && strings.TrimSpace(color) != "" {
			return strings.TrimSpace(color)
		}
	}
	if def, ok := registryByName[key]; ok && def.BadgeColor != "" {
		return def.BadgeColor
	}
	return defaultBadgeColor
}

func buildByName(defs []Definition) map[string]Definition {
	out := make(map[string]Definition, len(defs))
	for _, def := range defs {
		name := Normalize(def.Name)
		if name == "" {
			continue
		}
		out[name] = cloneDefinition(def)
		for _, alias := range def.Aliases {
			if alias = Normalize(alias); alias != "" {
				out[alias] = cloneDefinition(def)
			}
		}
	}
	return out
}

func cloneDefinition(def Definition) Definition {
	copy := def
	if def.Aliases != nil {
		copy.Aliases = append([]string{}, def.Aliases...)
	}
	return copy
}
