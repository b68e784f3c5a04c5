package config

import (
	"path/filepath"
	"testing"
)

func TestPathsLiveUnderDataDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	cases := map[string]func() (string, error){
		"config.toml":      CoreConfigPath,
		"sessions.db":      SessionsDBPath,
		"ui.log":           UILogPath,
		"keybindings.json": KeybindingsPath,
	}
	for name, fn := range cases {
		got, err := fn()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if want := filepath.Join(home, ".sidebar", name); got != want {
			t.Fatalf("unexpected path: got=%q want=%q", got, want)
		}
	}
}
