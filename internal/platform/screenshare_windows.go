package platform

import (
	"syscall"
	"unsafe"
)

var (
	procEnumWindows     = user32DLL.NewProc("EnumWindows")
	procIsWindowVisible = user32DLL.NewProc("IsWindowVisible")
	procGetWindowTextW  = user32DLL.NewProc("GetWindowTextW")
)

func (screenShareDetector) ScreenSharing() bool {
	sharing := false
	callback := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 {
			return 1
		}
		buffer := make([]uint16, 256)
		length, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buffer[0])), uintptr(len(buffer)))
		if length == 0 {
			return 1
		}
		if titleIndicatesSharing(syscall.UTF16ToString(buffer[:length])) {
			sharing = true
			return 0
		}
		return 1
	})
	procEnumWindows.Call(callback, 0)
	return sharing
}
