package platform

import (
	"fmt"
	"syscall"
)

var (
	user32DLL           = syscall.NewLazyDLL("user32.dll")
	procLockWorkStation = user32DLL.NewProc("LockWorkStation")
)

func (screenLocker) LockScreen() error {
	result, _, err := procLockWorkStation.Call()
	if result == 0 {
		return fmt.Errorf("lock workstation: %w", err)
	}
	return nil
}
