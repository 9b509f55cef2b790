package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

var linuxLockCommands = [][]string{
	{"loginctl", "lock-session"},
	{"xdg-screensaver", "lock"},
	{"dm-tool", "lock"},
}

func (screenLocker) LockScreen() error {
	for _, command := range linuxLockCommands {
		path, err := exec.LookPath(command[0])
		if err != nil {
			continue
		}
		output, err := exec.Command(path, command[1:]...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s: %w: %s", strings.Join(command, " "), err, strings.TrimSpace(string(output)))
		}
		return nil
	}
	return ErrLockUnsupported
}
