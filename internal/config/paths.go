package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".sidebar"

// DataDir returns the base data directory.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// CoreConfigPath returns the path to config.toml.
func CoreConfigPath() (string, error) {
	return dataFile("config.toml")
}

// SessionsDBPath returns the path to the bbolt session database.
func SessionsDBPath() (string, error) {
	return dataFile("sessions.db")
}

// UILogPath returns the file the terminal UI logs to.
func UILogPath() (string, error) {
	return dataFile("ui.log")
}

// KeybindingsPath returns the optional keybinding override file.
func KeybindingsPath() (string, error) {
	return dataFile("keybindings.json")
}

func dataFile(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
