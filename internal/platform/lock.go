package platform

import (
	"errors"

	"movereminder/internal/core/session"
)

// ErrLockUnsupported indicates no screen locking mechanism was found.
var ErrLockUnsupported = errors.New("screen lock unsupported")

// NewScreenLocker returns the locker for the running OS.
func NewScreenLocker() session.ScreenLocker {
	return screenLocker{}
}

type screenLocker struct{}
