package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"sidebar/internal/app"
	"sidebar/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	CoreConfigPath  string                 `json:"core_config_path" toml:"core_config_path"`
	KeybindingsPath string                 `json:"keybindings_path" toml:"keybindings_path"`
	Service         effectiveServiceConfig `json:"service" toml:"service"`
	Daemon          effectiveDaemonConfig  `json:"daemon" toml:"daemon"`
	Agent           effectiveAgentConfig   `json:"agent" toml:"agent"`
	Logging         effectiveLoggingConfig `json:"logging" toml:"logging"`
	ProviderBadges  map[string]string      `json:"provider_badges,omitempty" toml:"provider_badges,omitempty"`
	Keybindings     map[string]string      `json:"keybindings" toml:"keybindings"`
}

type effectiveServiceConfig struct {
	Mode string `json:"mode" toml:"mode"`
}

type effectiveDaemonConfig struct {
	Address string `json:"address" toml:"address"`
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveAgentConfig struct {
	DefaultModel string `json:"default_model" toml:"default_model"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

func newConfigCommand(wiring commandWiring) *cobra.Command {
	var defaults, raw bool
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if raw {
				return writeRawConfig(cmd.OutOrStdout(), wiring, defaults)
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if format != configFormatJSON && format != configFormatTOML {
				return fmt.Errorf("unsupported format %q", format)
			}
			payload, err := buildConfigOutput(wiring, defaults)
			if err != nil {
				return err
			}
			return writeConfigOutput(cmd.OutOrStdout(), format, payload)
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "print default config values")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the config file contents as TOML")
	cmd.Flags().StringVar(&format, "format", configFormatTOML, "output format: json|toml")
	return cmd
}

func buildConfigOutput(wiring commandWiring, defaults bool) (configOutput, error) {
	corePath, err := config.CoreConfigPath()
	if err != nil {
		return configOutput{}, err
	}
	keybindingsPath, err := config.KeybindingsPath()
	if err != nil {
		return configOutput{}, err
	}
	cfg := config.DefaultCoreConfig()
	bindings := app.DefaultKeybindings()
	if !defaults {
		if cfg, err = wiring.loadConfig(); err != nil {
			return configOutput{}, err
		}
		if bindings, err = app.LoadKeybindings(keybindingsPath); err != nil {
			return configOutput{}, err
		}
	}
	return configOutput{
		CoreConfigPath:  corePath,
		KeybindingsPath: keybindingsPath,
		Service:         effectiveServiceConfig{Mode: cfg.ServiceMode().String()},
		Daemon: effectiveDaemonConfig{
			Address: cfg.DaemonAddress(),
			BaseURL: cfg.DaemonBaseURL(),
		},
		Agent:          effectiveAgentConfig{DefaultModel: cfg.DefaultModel()},
		Logging:        effectiveLoggingConfig{Level: cfg.LogLevel()},
		ProviderBadges: cfg.ProviderBadgeColors(),
		Keybindings:    bindings.Bindings(),
	}, nil
}

func writeRawConfig(out io.Writer, wiring commandWiring, defaults bool) error {
	cfg := config.DefaultCoreConfig()
	if !defaults {
		var err error
		if cfg, err = wiring.loadConfig(); err != nil {
			return err
		}
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	default:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	}
}
