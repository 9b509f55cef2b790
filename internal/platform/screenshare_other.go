//go:build !windows

package platform

func (screenShareDetector) ScreenSharing() bool {
	return false
}
