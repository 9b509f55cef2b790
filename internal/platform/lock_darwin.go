package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func (screenLocker) LockScreen() error {
	path, err := exec.LookPath("pmset")
	if err != nil {
		return ErrLockUnsupported
	}
	output, err := exec.Command(path, "displaysleepnow").CombinedOutput()
	if err != nil {
		return fmt.Errorf("pmset displaysleepnow: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
