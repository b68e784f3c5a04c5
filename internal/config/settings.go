package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"sidebar/internal/types"
)

const (
	defaultDaemonAddress = "127.0.0.1:7787"
	defaultModel         = "gpt-4o-mini"
	envPrefix            = "SIDEBAR"
)

type CoreConfig struct {
	Service CoreServiceConfig `toml:"service"`
	Daemon  CoreDaemonConfig  `toml:"daemon"`
	Agent   CoreAgentConfig   `toml:"agent"`
	Logging CoreLoggingConfig `toml:"logging"`
	UI      CoreUIConfig      `toml:"ui"`
}

type CoreServiceConfig struct {
	Mode string `toml:"mode"`
}

type CoreDaemonConfig struct {
	Address string `toml:"address"`
	Token   string `toml:"token,omitempty"`
}

type CoreAgentConfig struct {
	DefaultModel string `toml:"default_model"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreUIConfig struct {
	ProviderBadges map[string]ProviderBadgeConfig `toml:"provider_badges,omitempty"`
}

type ProviderBadgeConfig struct {
	Color string `toml:"color"`
}

// envOverrides are read once at startup. Empty values leave the file config
// untouched.
type envOverrides struct {
	ServiceMode   string `envconfig:"SERVICE_MODE"`
	DaemonAddress string `envconfig:"DAEMON_ADDRESS"`
	DaemonToken   string `envconfig:"DAEMON_TOKEN"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Service: CoreServiceConfig{
			Mode: string(types.DeploymentClient),
		},
		Daemon: CoreDaemonConfig{
			Address: defaultDaemonAddress,
		},
		Agent: CoreAgentConfig{
			DefaultModel: defaultModel,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
	}
}

// LoadCoreConfig reads config.toml from the data dir and then applies
// SIDEBAR_* environment overrides.
func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	cfg, err := loadCoreConfigFromPath(path)
	if err != nil {
		return CoreConfig{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func (c CoreConfig) ServiceMode() types.DeploymentMode {
	return types.ParseDeploymentMode(c.Service.Mode)
}

func (c CoreConfig) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c CoreConfig) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c CoreConfig) DaemonToken() string {
	return strings.TrimSpace(c.Daemon.Token)
}

func (c CoreConfig) DefaultModel() string {
	model := strings.TrimSpace(c.Agent.DefaultModel)
	if model == "" {
		return defaultModel
	}
	return model
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// ProviderBadgeColors returns configured badge colours keyed by the raw
// provider name as written in the file.
func (c CoreConfig) ProviderBadgeColors() map[string]string {
	if len(c.UI.ProviderBadges) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.UI.ProviderBadges))
	for provider, badge := range c.UI.ProviderBadges {
		color := strings.TrimSpace(badge.Color)
		if strings.TrimSpace(provider) == "" || color == "" {
			continue
		}
		out[provider] = color
	}
	return out
}

// Encode renders the effective configuration as TOML.
func (c CoreConfig) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *CoreConfig) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if mode := strings.TrimSpace(env.ServiceMode); mode != "" {
		cfg.Service.Mode = mode
	}
	if addr := strings.TrimSpace(env.DaemonAddress); addr != "" {
		cfg.Daemon.Address = addr
	}
	if token := strings.TrimSpace(env.DaemonToken); token != "" {
		cfg.Daemon.Token = token
	}
	if level := strings.TrimSpace(env.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	return nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
