// Package model holds the mutable records kept by the debug state repository.
package model

import (
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
)

// Breakpoint is the repository layer record for a line breakpoint or logpoint.
type Breakpoint struct {
	ID             int64
	ClassPattern   string
	Line           int
	Status         entity.BreakpointStatus
	Location       string
	Reason         string
	Condition      string
	Compiled       *condition.Program
	LogMessage     string
	CaptureStack   bool
	StackMaxFrames int
	HitCount       int64

	// LineWatch is set once the breakpoint is installed.
	LineWatch *target.Watch
	// LoadWatch is set while the breakpoint waits for its class.
	LoadWatch *target.Watch
}

// Watches returns every installed watch of the record.
func (b *Breakpoint) Watches() []target.Watch {
	var out []target.Watch
	if b.LineWatch != nil {
		out = append(out, *b.LineWatch)
	}
	if b.LoadWatch != nil {
		out = append(out, *b.LoadWatch)
	}
	return out
}

// ExceptionBreakpoint is the repository layer record for an exception breakpoint.
type ExceptionBreakpoint struct {
	ID           int64
	ClassPattern string
	Caught       bool
	Uncaught     bool
	Status       entity.BreakpointStatus
	ClassName    string
	Reason       string

	ExceptionWatch *target.Watch
	LoadWatch      *target.Watch
}

// Watches returns every installed watch of the record.
func (b *ExceptionBreakpoint) Watches() []target.Watch {
	var out []target.Watch
	if b.ExceptionWatch != nil {
		out = append(out, *b.ExceptionWatch)
	}
	if b.LoadWatch != nil {
		out = append(out, *b.LoadWatch)
	}
	return out
}
