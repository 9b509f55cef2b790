package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"movereminder/internal/core/session"
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

var (
	procGetLastInputInfo = user32DLL.NewProc("GetLastInputInfo")
	procGetTickCount64   = syscall.NewLazyDLL("kernel32.dll").NewProc("GetTickCount64")
)

func newIdleProvider() session.IdleChecker {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	tickResult, _, tickErr := procGetTickCount64.Call()
	if tickResult == 0 {
		return 0, fmt.Errorf("get tick count: %w", tickErr)
	}

	// dwTime wraps every 49.7 days; compare in 32 bits.
	idleMillis := uint32(tickResult) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
