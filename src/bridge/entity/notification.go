package entity

import "time"

// NotificationType names an outbound notification.
type NotificationType string

const (
	BreakpointHit               NotificationType = "breakpoint_hit"
	ExceptionHit                NotificationType = "exception_hit"
	LogpointHit                 NotificationType = "logpoint_hit"
	BreakpointResolved          NotificationType = "breakpoint_resolved"
	ExceptionBreakpointResolved NotificationType = "exception_breakpoint_resolved"
	BreakpointConditionError    NotificationType = "breakpoint_condition_error"
	VMDisconnected              NotificationType = "vm_disconnected"
)

// Method returns the JSON-RPC method the notification is sent as.
func (t NotificationType) Method() string {
	return "debug/" + string(t)
}

// Notification is an event pushed to the controller.
type Notification struct {
	Type    NotificationType `json:"type"`
	Payload interface{}      `json:"payload"`
}

// DisconnectReason classifies why the target went away.
type DisconnectReason string

const (
	DeviceDisconnected DisconnectReason = "device_disconnected"
	AppKilled          DisconnectReason = "app_killed"
	AppCrashed         DisconnectReason = "app_crashed"
)

// StoppedFrame describes where a thread stopped. Stack and Locals are best effort.
type StoppedFrame struct {
	ThreadID   uint64      `json:"threadId"`
	ThreadName string      `json:"threadName,omitempty"`
	Location   string      `json:"location"`
	Stack      []string    `json:"stack,omitempty"`
	Locals     *Inspection `json:"locals,omitempty"`
}

// BreakpointHitPayload is sent when a thread suspends at a breakpoint.
type BreakpointHitPayload struct {
	ID       int64        `json:"id"`
	Location string       `json:"location"`
	HitCount int64        `json:"hitCount"`
	Frame    StoppedFrame `json:"frame"`
}

// ExceptionHitPayload is sent when a thread suspends at an exception breakpoint.
type ExceptionHitPayload struct {
	ID             int64        `json:"id"`
	ExceptionClass string       `json:"exceptionClass"`
	Message        *string      `json:"message,omitempty"`
	ThrowLocation  string       `json:"throwLocation"`
	CatchLocation  string       `json:"catchLocation,omitempty"`
	Caught         bool         `json:"caught"`
	Frame          StoppedFrame `json:"frame"`
}

// LogpointHitPayload is sent for every delivered logpoint hit.
type LogpointHitPayload struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	HitCount   int64     `json:"hitCount"`
	Location   string    `json:"location"`
	ThreadName string    `json:"threadName"`
	Timestamp  time.Time `json:"timestamp"`
	Stack      []string  `json:"stack,omitempty"`
}

// BreakpointResolvedPayload is sent when a pending breakpoint is installed.
type BreakpointResolvedPayload struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
}

// ExceptionBreakpointResolvedPayload is sent when a pending exception breakpoint is installed.
type ExceptionBreakpointResolvedPayload struct {
	ID        int64  `json:"id"`
	ClassName string `json:"className"`
}

// ConditionErrorPayload is sent when a condition fails to evaluate.
type ConditionErrorPayload struct {
	ID        int64  `json:"id"`
	Condition string `json:"condition"`
	Error     string `json:"error"`
	Location  string `json:"location"`
}

// VMDisconnectedPayload is sent once when the target goes away.
type VMDisconnectedPayload struct {
	Reason DisconnectReason `json:"reason"`
	Detail string           `json:"detail"`
}
