package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var errEmptyExecPath = errors.New("executable path is empty")

// Autostart registers the application to launch when the user logs in.
type Autostart interface {
	Enabled() (bool, error)
	Enable(execPath string) error
	Disable() error
}

type autostart struct {
	name string
}

// NewAutostart returns the login item manager for appName on the running OS.
func NewAutostart(appName string) Autostart {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "movereminder"
	}
	return &autostart{name: name}
}

// SyncAutostart enables or disables the login item to match enabled. It only
// touches the system when the registration differs.
func SyncAutostart(login Autostart, enabled bool) error {
	current, err := login.Enabled()
	if err != nil {
		return fmt.Errorf("check autostart: %w", err)
	}
	if current == enabled {
		return nil
	}
	if !enabled {
		return login.Disable()
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return login.Enable(execPath)
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
		return "", fmt.Errorf("config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
