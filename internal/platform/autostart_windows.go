//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (login *autostart) Enabled() (bool, error) {
	err := exec.Command("reg", "query", registryRunKey, "/v", login.name).Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, fmt.Errorf("reg query: %w", err)
}

func (login *autostart) Enable(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: %w", errEmptyExecPath)
	}
	return runReg("enable autostart", "add", registryRunKey, "/v", login.name, "/t", "REG_SZ", "/d", quoteWindowsPath(execPath), "/f")
}

func (login *autostart) Disable() error {
	return runReg("disable autostart", "delete", registryRunKey, "/v", login.name, "/f")
}

func runReg(action string, args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s: %w: %s", action, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	return `"` + strings.Trim(execPath, `"`) + `"`
}
