// Package breakpoints keeps the line and exception breakpoint registries of an attached target and
// turns breakpoint, exception and class-load events into notifications.
package breakpoints

import (
	"context"

	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/clock"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/repository/debugstate"
	"go.uber.org/zap"
)

const (
	_nameKey = "breakpoints"

	// DefaultStackMaxFrames bounds logpoint stacks when the request does not.
	DefaultStackMaxFrames = 20
	// DefaultPayloadFrames bounds the stack in stopped-frame payloads.
	DefaultPayloadFrames = 10
)

// Registry manages the breakpoints of one attached target.
type Registry interface {
	// SetBreakpoint installs a line breakpoint or logpoint. A class that is not loaded yet yields a pending breakpoint, not an error.
	SetBreakpoint(ctx context.Context, req entity.SetBreakpointRequest) (entity.Breakpoint, error)
	// RemoveBreakpoint removes a line breakpoint. Unknown ids are InvalidState.
	RemoveBreakpoint(ctx context.Context, id int64) error
	// ListBreakpoints returns a snapshot ordered by id.
	ListBreakpoints() []entity.Breakpoint

	// SetExceptionBreakpoint installs an exception breakpoint.
	SetExceptionBreakpoint(ctx context.Context, req entity.SetExceptionBreakpointRequest) (entity.ExceptionBreakpoint, error)
	// RemoveExceptionBreakpoint removes an exception breakpoint. Unknown ids are InvalidState.
	RemoveExceptionBreakpoint(ctx context.Context, id int64) error
	// ListExceptionBreakpoints returns a snapshot ordered by id.
	ListExceptionBreakpoints() []entity.ExceptionBreakpoint

	// OnClassLoad resolves pending breakpoints matching a newly loaded class. It always asks to resume.
	OnClassLoad(ctx context.Context, ev target.Event) bool
	// OnBreakpointEvent handles a line watch hit and reports whether the event set may be resumed.
	OnBreakpointEvent(ctx context.Context, ev target.Event) bool
	// OnExceptionEvent handles an exception watch hit and reports whether the event set may be resumed.
	OnExceptionEvent(ctx context.Context, ev target.Event) bool

	// ClearBreakpointRequests removes every line breakpoint and resets the suspension bookkeeping. Failures are logged only.
	ClearBreakpointRequests(ctx context.Context)
	// ClearExceptionBreakpointRequests removes every exception breakpoint and resets the suspension bookkeeping. Failures are logged only.
	ClearExceptionBreakpointRequests(ctx context.Context)
}

// Limits bound captured stacks.
type Limits struct {
	StackMaxFrames int
	PayloadFrames  int
}

// Params define the collaborators of a registry. One registry serves one attached target.
type Params struct {
	Target    target.Target
	State     *debugstate.State
	Inspector inspector.Inspector
	Emitter   notifier.Emitter
	Symbols   symbolmap.Mapping
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Clock     clock.Clock
	Limits    Limits
}

type registry struct {
	target    target.Target
	state     *debugstate.State
	inspector inspector.Inspector
	emitter   notifier.Emitter
	symbols   symbolmap.Mapping
	logger    *zap.SugaredLogger
	stats     tally.Scope
	clock     clock.Clock
	limits    Limits
}

// New creates a Registry.
func New(p Params) Registry {
	limits := p.Limits
	if limits.StackMaxFrames <= 0 {
		limits.StackMaxFrames = DefaultStackMaxFrames
	}
	if limits.PayloadFrames <= 0 {
		limits.PayloadFrames = DefaultPayloadFrames
	}
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	return &registry{
		target:    p.Target,
		state:     p.State,
		inspector: p.Inspector,
		emitter:   p.Emitter,
		symbols:   p.Symbols,
		logger:    p.Logger.With("component", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
		clock:     c,
		limits:    limits,
	}
}

func (r *registry) ListBreakpoints() []entity.Breakpoint {
	return mapper.BreakpointsToEntities(r.state.Breakpoints())
}

func (r *registry) ListExceptionBreakpoints() []entity.ExceptionBreakpoint {
	return mapper.ExceptionBreakpointsToEntities(r.state.ExceptionBreakpoints())
}

func (r *registry) location(loc target.Location) string {
	return mapper.LocationToString(loc, r.symbols)
}

func (r *registry) emit(ctx context.Context, t entity.NotificationType, payload interface{}) {
	r.emitter.Emit(ctx, entity.Notification{Type: t, Payload: payload})
}

// stoppedFrame captures the payload for a thread that stays suspended for the client.
func (r *registry) stoppedFrame(ctx context.Context, thread target.ThreadID) entity.StoppedFrame {
	return r.inspector.Capture(ctx, r.target, thread, inspector.CaptureOptions{
		MaxFrames:     r.limits.PayloadFrames,
		IncludeLocals: true,
		Symbols:       r.symbols,
		Identity:      r.state.AssignHandle,
	})
}
