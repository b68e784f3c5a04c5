package providers

import "testing"

func TestLookupResolvesAliases(t *testing.T) {
	def, ok := Lookup(" Claude ")
	if !ok {
		t.Fatalf("expected claude alias to resolve")
	}
	if def.Name != "anthropic" {
		t.Fatalf("expected anthropic definition, got %q", def.Name)
	}
	if _, ok := Lookup("unknown-provider"); ok {
		t.Fatalf("expected unknown provider lookup to fail")
	}
}

func TestAllReturnsCopies(t *testing.T) {
	defs := All()
	if len(defs) != len(registry) {
		t.Fatalf("expected %d definitions, got %d", len(registry), len(defs))
	}
	for i := range defs {
		if defs[i].Name != "anthropic" {
			continue
		}
		defs[i].Aliases[0] = "mutated"
	}
	def, _ := Lookup("anthropic")
	if def.Aliases[0] != "claude" {
		t.Fatalf("expected registry to be unaffected by caller mutation, got %q", def.Aliases[0])
	}
}

func TestBadgeColor(t *testing.T) {
	if got := BadgeColor("openai", nil); got != "42" {
		t.Fatalf("expected registry colour, got %q", got)
	}
	if got := BadgeColor("OpenAI", map[string]string{"openai": "201"}); got != "201" {
		t.Fatalf("expected override colour, got %q", got)
	}
	if got := BadgeColor("my-proxy", nil); got != defaultBadgeColor {
		t.Fatalf("expected fallback colour, got %q", got)
	}
	if got := BadgeColor("", nil); got != defaultBadgeColor {
		t.Fatalf("expected fallback colour for empty provider, got %q", got)
	}
}
