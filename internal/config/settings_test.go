package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sidebar/internal/types"
)

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	dataDir := filepath.Join(home, ".sidebar")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadCoreConfigDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	t.Setenv("SIDEBAR_SERVICE_MODE", "")
	cfg, err := LoadCoreConfig()
	if err != nil {
		t.Fatalf("LoadCoreConfig: %v", err)
	}
	if cfg.ServiceMode() != types.DeploymentClient {
		t.Fatalf("expected client mode by default, got %q", cfg.ServiceMode())
	}
	if cfg.DaemonBaseURL() != "http://127.0.0.1:7787" {
		t.Fatalf("unexpected daemon base url: %q", cfg.DaemonBaseURL())
	}
	if cfg.DefaultModel() != "gpt-4o-mini" {
		t.Fatalf("unexpected default model: %q", cfg.DefaultModel())
	}
}

func TestLoadCoreConfigFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	t.Setenv("SIDEBAR_SERVICE_MODE", "")
	writeConfigFile(t, home, strings.Join([]string{
		"[service]",
		"mode = \"server\"",
		"[daemon]",
		"address = \"http://127.0.0.1:9999/\"",
		"[agent]",
		"default_model = \"gpt-3.5\"",
		"[ui.provider_badges.openai]",
		"color = \"42\"",
		"",
	}, "\n"))

	cfg, err := LoadCoreConfig()
	if err != nil {
		t.Fatalf("LoadCoreConfig: %v", err)
	}
	if cfg.ServiceMode() != types.DeploymentServer {
		t.Fatalf("expected server mode, got %q", cfg.ServiceMode())
	}
	if cfg.DaemonAddress() != "127.0.0.1:9999" {
		t.Fatalf("unexpected daemon address: %q", cfg.DaemonAddress())
	}
	if cfg.DefaultModel() != "gpt-3.5" {
		t.Fatalf("unexpected default model: %q", cfg.DefaultModel())
	}
	if got := cfg.ProviderBadgeColors()["openai"]; got != "42" {
		t.Fatalf("expected openai badge colour override, got %q", got)
	}
}

func TestLoadCoreConfigEnvOverridesServiceMode(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	writeConfigFile(t, home, "[service]\nmode = \"client\"\n")
	t.Setenv("SIDEBAR_SERVICE_MODE", "server")

	cfg, err := LoadCoreConfig()
	if err != nil {
		t.Fatalf("LoadCoreConfig: %v", err)
	}
	if cfg.ServiceMode() != types.DeploymentServer {
		t.Fatalf("expected env to force server mode, got %q", cfg.ServiceMode())
	}
}

func TestLoadCoreConfigRejectsInvalidTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	writeConfigFile(t, home, "[service\nmode = ")
	if _, err := LoadCoreConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}
