package target

import "fmt"

// EventKind discriminates Event.
type EventKind int

const (
	EventBreakpoint EventKind = iota + 1
	EventException
	EventClassPrepare
	EventStep
	EventVMDeath
	EventVMDisconnect
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventBreakpoint:
		return "breakpoint"
	case EventException:
		return "exception"
	case EventClassPrepare:
		return "class_prepare"
	case EventStep:
		return "step"
	case EventVMDeath:
		return "vm_death"
	case EventVMDisconnect:
		return "vm_disconnect"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// ExceptionInfo describes a thrown exception.
type ExceptionInfo struct {
	Object ObjectID
	Class  ClassRef
	// Catch is nil for uncaught exceptions.
	Catch *Location
}

// Event is one notification from the target. Tag echoes the tag given when the originating watch was installed.
type Event struct {
	Kind      EventKind
	Watch     Watch
	Tag       int64
	Thread    ThreadID
	Location  Location
	Class     ClassRef
	Exception *ExceptionInfo
	Detail    string
}

// EventSet groups events delivered together. Resuming the set releases whatever its policy suspended.
type EventSet struct {
	ID     int64
	Policy SuspendPolicy
	Events []Event
}
