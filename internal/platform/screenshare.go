package platform

import (
	"strings"

	"movereminder/internal/core/session"
)

// NewScreenShareDetector looks for meeting windows that announce a shared
// screen. Systems without window title enumeration always report false.
func NewScreenShareDetector() session.ScreenShareDetector {
	return screenShareDetector{}
}

type screenShareDetector struct{}

var sharingKeywords = []string{
	"is sharing",
	"screen share",
	"presenting",
	"zoom meeting",
	"teams meeting",
	"webex",
	"google meet",
	"sharing screen",
}

func titleIndicatesSharing(title string) bool {
	title = strings.ToLower(title)
	for _, keyword := range sharingKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}
