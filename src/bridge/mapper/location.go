package mapper

import (
	"fmt"

	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
)

// ClassName passes a raw declaring-type name through the symbol mapping. A nil mapping leaves it unchanged.
func ClassName(raw string, symbols symbolmap.Mapping) string {
	if symbols == nil {
		return raw
	}
	return symbols.Display(raw)
}

// LocationToString formats a location as "<name>:<line>".
func LocationToString(loc target.Location, symbols symbolmap.Mapping) string {
	return fmt.Sprintf("%s:%d", ClassName(loc.Class.Name, symbols), loc.Line)
}

// FrameToString formats a stack frame as "<name>.<method>:<line>". Frames without line information end in ":?".
func FrameToString(frame target.Frame, symbols symbolmap.Mapping) string {
	name := ClassName(frame.Location.Class.Name, symbols)
	if frame.Location.Line <= 0 {
		return fmt.Sprintf("%s.%s:?", name, frame.Location.Method)
	}
	return fmt.Sprintf("%s.%s:%d", name, frame.Location.Method, frame.Location.Line)
}
