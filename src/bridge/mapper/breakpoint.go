// Package mapper converts between wire requests, repository models and entities.
package mapper

import (
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/model"
)

// BreakpointToEntity maps a breakpoint record to its immutable snapshot.
func BreakpointToEntity(bp model.Breakpoint) entity.Breakpoint {
	return entity.Breakpoint{
		ID:             bp.ID,
		ClassPattern:   bp.ClassPattern,
		Line:           bp.Line,
		Status:         bp.Status,
		Location:       bp.Location,
		Reason:         bp.Reason,
		Condition:      bp.Condition,
		LogMessage:     bp.LogMessage,
		CaptureStack:   bp.CaptureStack,
		StackMaxFrames: bp.StackMaxFrames,
		HitCount:       bp.HitCount,
	}
}

// BreakpointsToEntities maps breakpoint records to snapshots, preserving order.
func BreakpointsToEntities(bps []model.Breakpoint) []entity.Breakpoint {
	out := make([]entity.Breakpoint, 0, len(bps))
	for _, bp := range bps {
		out = append(out, BreakpointToEntity(bp))
	}
	return out
}

// ExceptionBreakpointToEntity maps an exception breakpoint record to its immutable snapshot.
func ExceptionBreakpointToEntity(bp model.ExceptionBreakpoint) entity.ExceptionBreakpoint {
	return entity.ExceptionBreakpoint{
		ID:           bp.ID,
		ClassPattern: bp.ClassPattern,
		Caught:       bp.Caught,
		Uncaught:     bp.Uncaught,
		Status:       bp.Status,
		ClassName:    bp.ClassName,
		Reason:       bp.Reason,
	}
}

// ExceptionBreakpointsToEntities maps exception breakpoint records to snapshots, preserving order.
func ExceptionBreakpointsToEntities(bps []model.ExceptionBreakpoint) []entity.ExceptionBreakpoint {
	out := make([]entity.ExceptionBreakpoint, 0, len(bps))
	for _, bp := range bps {
		out = append(out, ExceptionBreakpointToEntity(bp))
	}
	return out
}
