package entity

// BreakpointStatus is the resolution state of a breakpoint.
type BreakpointStatus string

const (
	// StatusPending means the target class is not loaded yet.
	StatusPending BreakpointStatus = "pending"
	// StatusSet means a watch is installed in the target.
	StatusSet BreakpointStatus = "set"
)

// ReasonClassNotLoaded is the only pending reason.
const ReasonClassNotLoaded = "class_not_loaded"

// SetBreakpointRequest creates a line breakpoint or logpoint.
type SetBreakpointRequest struct {
	ClassPattern   string  `json:"classPattern"`
	Line           int     `json:"line"`
	Condition      *string `json:"condition,omitempty"`
	LogMessage     *string `json:"logMessage,omitempty"`
	CaptureStack   bool    `json:"captureStack,omitempty"`
	StackMaxFrames *int    `json:"stackMaxFrames,omitempty"`
}

// Breakpoint is a snapshot of a registered line breakpoint or logpoint.
type Breakpoint struct {
	ID             int64            `json:"id"`
	ClassPattern   string           `json:"classPattern"`
	Line           int              `json:"line"`
	Status         BreakpointStatus `json:"status"`
	Location       string           `json:"location,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	Condition      string           `json:"condition,omitempty"`
	LogMessage     string           `json:"logMessage,omitempty"`
	CaptureStack   bool             `json:"captureStack,omitempty"`
	StackMaxFrames int              `json:"stackMaxFrames,omitempty"`
	HitCount       int64            `json:"hitCount"`
}

// IsLogpoint reports whether hits log instead of suspending.
func (b Breakpoint) IsLogpoint() bool {
	return b.LogMessage != ""
}

// SetExceptionBreakpointRequest creates an exception breakpoint. An empty or "*" pattern matches every exception.
type SetExceptionBreakpointRequest struct {
	ClassPattern string `json:"classPattern"`
	Caught       bool   `json:"caught"`
	Uncaught     bool   `json:"uncaught"`
}

// ExceptionBreakpoint is a snapshot of a registered exception breakpoint.
type ExceptionBreakpoint struct {
	ID           int64            `json:"id"`
	ClassPattern string           `json:"classPattern"`
	Caught       bool             `json:"caught"`
	Uncaught     bool             `json:"uncaught"`
	Status       BreakpointStatus `json:"status"`
	ClassName    string           `json:"className,omitempty"`
	Reason       string           `json:"reason,omitempty"`
}

// RemoveRequest identifies a breakpoint to remove.
type RemoveRequest struct {
	ID int64 `json:"id"`
}
