// Package target defines the contract between the bridge and an attached virtual machine.
// Implementations translate these calls into a concrete wire protocol.
package target

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrThreadNotSuspended is returned by frame and variable reads on a running thread.
	ErrThreadNotSuspended = errors.New("thread is not suspended")
	// ErrUnknownWatch is returned when clearing a watch the target no longer knows about.
	ErrUnknownWatch = errors.New("unknown watch")
	// ErrDisposed is returned by every call made after Dispose.
	ErrDisposed = errors.New("target disposed")
)

// ThreadID identifies a thread in the target.
type ThreadID uint64

// ObjectID identifies a heap object in the target. Zero is never a valid object.
type ObjectID uint64

// ClassID identifies a loaded class in the target.
type ClassID uint64

// ClassRef names a loaded class.
type ClassRef struct {
	ID   ClassID
	Name string
}

// Location is an executable code position.
type Location struct {
	Class  ClassRef
	Method string
	Line   int
	Index  uint64
}

// String renders the raw location without symbol mapping.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.Class.Name, l.Line)
}

// SuspendPolicy is fixed per watch at install time.
type SuspendPolicy int

const (
	// SuspendNone lets the event thread continue running.
	SuspendNone SuspendPolicy = iota
	// SuspendEventThread suspends only the thread that produced the event.
	SuspendEventThread
	// SuspendAll suspends every thread in the target.
	SuspendAll
)

// WatchKind discriminates installed event requests.
type WatchKind int

const (
	// WatchLine fires when a thread reaches a code location.
	WatchLine WatchKind = iota + 1
	// WatchClassLoad fires when a class matching a pattern is prepared.
	WatchClassLoad
	// WatchException fires when an exception is thrown.
	WatchException
	// WatchStep fires when a stepping thread reaches its next stop.
	WatchStep
)

// String implements fmt.Stringer.
func (k WatchKind) String() string {
	switch k {
	case WatchLine:
		return "line"
	case WatchClassLoad:
		return "class_load"
	case WatchException:
		return "exception"
	case WatchStep:
		return "step"
	default:
		return fmt.Sprintf("watch(%d)", int(k))
	}
}

// Watch is a handle to an installed event request.
type Watch struct {
	Kind WatchKind
	ID   int64
}

// StepKind selects the stepping granularity.
type StepKind string

const (
	// StepOver stops at the next line in the current frame or a caller.
	StepOver StepKind = "over"
	// StepInto stops at the next line, entering calls.
	StepInto StepKind = "into"
	// StepOut stops after the current frame returns.
	StepOut StepKind = "out"
)

// Valid reports whether k is a known step kind.
func (k StepKind) Valid() bool {
	switch k {
	case StepOver, StepInto, StepOut:
		return true
	default:
		return false
	}
}

// Frame is one stack frame of a suspended thread. Index 0 is the innermost frame.
type Frame struct {
	Index    int
	Location Location
}

// Variable is a named local slot.
type Variable struct {
	Name  string
	Value Value
}

// Field describes a declared field of a class.
type Field struct {
	ID     uint64
	Name   string
	Static bool
}

// Target is the set of operations the bridge needs from an attached VM.
// Blocking calls honor ctx cancellation.
type Target interface {
	// ClassesByName returns loaded classes with exactly this name.
	ClassesByName(ctx context.Context, name string) ([]ClassRef, error)
	// LoadedClasses returns every loaded class in load order.
	LoadedClasses(ctx context.Context) ([]ClassRef, error)
	// LineLocations returns the executable locations of a source line in a class.
	LineLocations(ctx context.Context, class ClassRef, line int) ([]Location, error)

	// SetLineWatch installs a line watch. Events carry tag.
	SetLineWatch(ctx context.Context, loc Location, policy SuspendPolicy, tag int64) (Watch, error)
	// SetClassLoadWatch installs a class-prepare watch filtered by a class name pattern.
	SetClassLoadWatch(ctx context.Context, pattern string, policy SuspendPolicy, tag int64) (Watch, error)
	// SetExceptionWatch installs an exception watch. A nil class matches every exception.
	SetExceptionWatch(ctx context.Context, class *ClassRef, caught, uncaught bool, policy SuspendPolicy, tag int64) (Watch, error)
	// SetStepWatch installs a single-shot step request on a thread.
	SetStepWatch(ctx context.Context, thread ThreadID, kind StepKind, policy SuspendPolicy, tag int64) (Watch, error)
	// ClearWatch removes an installed watch.
	ClearWatch(ctx context.Context, w Watch) error

	// NextEventSet waits up to timeout for the next event set. A nil set with a nil error means the wait timed out.
	NextEventSet(ctx context.Context, timeout time.Duration) (*EventSet, error)
	// ResumeSet resumes whatever the event set suspended.
	ResumeSet(ctx context.Context, set *EventSet) error
	// ResumeThread resumes one thread.
	ResumeThread(ctx context.Context, thread ThreadID) error
	// ResumeAll resumes every thread.
	ResumeAll(ctx context.Context) error

	// ThreadName returns the thread's display name.
	ThreadName(ctx context.Context, thread ThreadID) (string, error)
	// Frames returns count frames starting at start. A negative count returns all remaining frames.
	Frames(ctx context.Context, thread ThreadID, start, count int) ([]Frame, error)
	// Locals returns the visible local variables of a frame.
	Locals(ctx context.Context, thread ThreadID, frame int) ([]Variable, error)
	// This returns the receiver of a frame, or a null value for static frames.
	This(ctx context.Context, thread ThreadID, frame int) (Value, error)

	// ObjectClass returns the runtime class of an object.
	ObjectClass(ctx context.Context, obj ObjectID) (ClassRef, error)
	// Fields returns the declared fields of a class including inherited ones.
	Fields(ctx context.Context, class ClassRef) ([]Field, error)
	// FieldValue reads one field of an object.
	FieldValue(ctx context.Context, obj ObjectID, field Field) (Value, error)
	// ArrayLength returns the length of an array object.
	ArrayLength(ctx context.Context, obj ObjectID) (int, error)
	// ArrayValues reads count elements starting at first.
	ArrayValues(ctx context.Context, obj ObjectID, first, count int) ([]Value, error)
	// StringValue reads the contents of a string object.
	StringValue(ctx context.Context, obj ObjectID) (string, error)

	// Dispose releases the connection. The target keeps running.
	Dispose(ctx context.Context) error
}

// Connector opens a Target from an address.
type Connector interface {
	// Scheme is the address scheme this connector handles, such as "tcp".
	Scheme() string
	Connect(ctx context.Context, address string) (Target, error)
}
