package platform

import "movereminder/internal/core/session"

// NewIdleProvider returns the input-idle probe for the running OS. Systems
// without a probe report session.ErrIdleUnsupported on the first check.
func NewIdleProvider() session.IdleChecker {
	return newIdleProvider()
}
