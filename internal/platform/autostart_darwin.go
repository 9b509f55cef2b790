//go:build darwin

package platform

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (login *autostart) label() string {
	return "com.movereminder." + slug(login.name)
}

func (login *autostart) plistPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", login.label()+".plist"), nil
}

func (login *autostart) Enabled() (bool, error) {
	path, err := login.plistPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (login *autostart) Enable(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: %w", errEmptyExecPath)
	}
	path, err := login.plistPath()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(launchAgentPlist(login.label(), execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return nil
}

func (login *autostart) Disable() error {
	path, err := login.plistPath()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentPlist(label, execPath string) string {
	var plist strings.Builder
	plist.WriteString(xml.Header)
	plist.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	plist.WriteString("<plist version=\"1.0\">\n<dict>\n")
	plist.WriteString("\t<key>Label</key>\n\t<string>" + xmlText(label) + "</string>\n")
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n\t\t<string>" + xmlText(execPath) + "</string>\n\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func xmlText(value string) string {
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(value))
	return escaped.String()
}
