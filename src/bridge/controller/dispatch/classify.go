package dispatch

import (
	"strings"

	"github.com/uber/debug-bridge/src/bridge/entity"
)

var (
	_transportKeywords = []string{
		"transport",
		"disconnect",
		"offline",
		"reset",
		"broken pipe",
		"connection refused",
		"connection closed",
		"unreachable",
		"no route",
		"eof",
		"device not found",
		"adb",
	}
	_killedKeywords = []string{
		"killed",
		"terminated",
		"force-stop",
		"force stop",
		"forcestop",
		"sigkill",
		"am kill",
	}
)

// Classify maps the text describing a lost target to a disconnect reason.
// Transport failures win over kill signals, and anything unrecognized counts as a crash.
func Classify(detail string) entity.DisconnectReason {
	text := strings.ToLower(detail)
	if containsAny(text, _transportKeywords) {
		return entity.DeviceDisconnected
	}
	if containsAny(text, _killedKeywords) {
		return entity.AppKilled
	}
	return entity.AppCrashed
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
