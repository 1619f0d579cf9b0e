package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetConfigDir returns the appropriate configuration directory for the current operating system
func GetConfigDir() string {
	var appDataDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\MousePilot\configs
		appData := os.Getenv("APPDATA")
		if appData != "" {
			appDataDir = filepath.Join(appData, "MousePilot", "configs")
		}
	case "darwin":
		// macOS: ~/Library/Application Support/MousePilot/configs
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, "Library", "Application Support", "MousePilot", "configs")
		}
	}

	if appDataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, ".mouse-pilot", "configs")
		} else {
			appDataDir = filepath.Join(".", "configs")
		}
	}

	return appDataDir
}

// GetMacrosDir returns the default macro storage directory.
// MOUSE_PILOT_DIR overrides it.
func GetMacrosDir() string {
	if dir := os.Getenv("MOUSE_PILOT_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(GetConfigDir()), "macros")
}
