// Package storage persists user preferences as a flat key-value file.
// The codec follows the file extension: .toml is read and written as TOML,
// anything else as YAML.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"movereminder/internal/core/model"
)

const (
	settingsFileName = "settings.yaml"
	maxMinutes       = 24 * 60
)

type fileSettings struct {
	SitMinutes       int   `yaml:"sit_minutes,omitempty"        toml:"sit_minutes,omitempty"`
	StandMinutes     int   `yaml:"stand_minutes,omitempty"      toml:"stand_minutes,omitempty"`
	WalkMinutes      int   `yaml:"walk_minutes,omitempty"       toml:"walk_minutes,omitempty"`
	IncludeStanding  *bool `yaml:"include_standing,omitempty"   toml:"include_standing,omitempty"`
	IncludeWalking   *bool `yaml:"include_walking,omitempty"    toml:"include_walking,omitempty"`
	IdleResetEnabled *bool `yaml:"idle_reset_enabled,omitempty" toml:"idle_reset_enabled,omitempty"`
	IdleResetMinutes int   `yaml:"idle_reset_minutes,omitempty" toml:"idle_reset_minutes,omitempty"`
	LaunchAtLogin    *bool `yaml:"launch_at_login,omitempty"    toml:"launch_at_login,omitempty"`
}

type codec struct {
	name      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	yamlCodec = codec{name: "yaml", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
	tomlCodec = codec{name: "toml", marshal: toml.Marshal, unmarshal: toml.Unmarshal}
)

func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlCodec
	}
	return yamlCodec
}

// DefaultPath resolves <user config dir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from path.
// If the file does not exist, default settings are returned. Keys that are
// missing or out of range keep their defaults.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	format := codecFor(path)
	var fileData fileSettings
	if err := format.unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings %s: %w", format.name, err)
	}

	applyFileSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to path, creating its directory.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := fileSettings{
		SitMinutes:       settings.SitMinutes,
		StandMinutes:     settings.StandMinutes,
		WalkMinutes:      settings.WalkMinutes,
		IncludeStanding:  &settings.IncludeStanding,
		IncludeWalking:   &settings.IncludeWalking,
		IdleResetEnabled: &settings.IdleResetEnabled,
		IdleResetMinutes: settings.IdleResetMinutes,
		LaunchAtLogin:    &settings.LaunchAtLogin,
	}

	format := codecFor(path)
	serialized, err := format.marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings %s: %w", format.name, err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyFileSettings(settings *model.Settings, fileData fileSettings) {
	if validMinutes(fileData.SitMinutes) {
		settings.SitMinutes = fileData.SitMinutes
	}
	if validMinutes(fileData.StandMinutes) {
		settings.StandMinutes = fileData.StandMinutes
	}
	if validMinutes(fileData.WalkMinutes) {
		settings.WalkMinutes = fileData.WalkMinutes
	}
	if validMinutes(fileData.IdleResetMinutes) {
		settings.IdleResetMinutes = fileData.IdleResetMinutes
	}

	applyBool(&settings.IncludeStanding, fileData.IncludeStanding)
	applyBool(&settings.IncludeWalking, fileData.IncludeWalking)
	applyBool(&settings.IdleResetEnabled, fileData.IdleResetEnabled)
	applyBool(&settings.LaunchAtLogin, fileData.LaunchAtLogin)
}

func validMinutes(minutes int) bool {
	return minutes > 0 && minutes <= maxMinutes
}

func applyBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
