// Package stepping runs step requests against a suspended thread and completes them from step events.
package stepping

import (
	"context"
	stderr "errors"
	"fmt"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/clock"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/model"
	"github.com/uber/debug-bridge/src/bridge/repository/debugstate"
	"go.uber.org/zap"
)

const (
	_nameKey = "stepping"

	// DefaultPayloadFrames bounds the stack in a completed step's frame.
	DefaultPayloadFrames = 10

	_supersededRemediation = "The step was superseded by a newer step request after the thread suspended again."
	_timeoutRemediation    = "The step did not complete within %s. The thread may be blocked or waiting on I/O. " +
		"The step stays armed; list suspended threads or resume to continue."
)

// Stepper drives step requests. At most one step is in flight per session.
type Stepper interface {
	// Step resumes a client-suspended thread with a step watch and blocks until the step completes or timeout elapses.
	// A timeout is reported as a result, not an error, and leaves the step armed for a later completion.
	Step(ctx context.Context, thread target.ThreadID, kind target.StepKind, timeout time.Duration) (entity.StepResult, error)
	// OnStepEvent completes the active step and reports whether the event set may be resumed.
	OnStepEvent(ctx context.Context, ev target.Event) bool
	// Abort fulfills the active step with a timeout result without touching the target. It reports whether a step was active.
	Abort(remediation string) bool
}

// Params define the collaborators of a stepper.
type Params struct {
	Target        target.Target
	State         *debugstate.State
	Inspector     inspector.Inspector
	Symbols       symbolmap.Mapping
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Clock         clock.Clock
	PayloadFrames int
}

type stepper struct {
	target        target.Target
	state         *debugstate.State
	inspector     inspector.Inspector
	symbols       symbolmap.Mapping
	logger        *zap.SugaredLogger
	stats         tally.Scope
	clock         clock.Clock
	payloadFrames int
}

// New creates a Stepper.
func New(p Params) Stepper {
	frames := p.PayloadFrames
	if frames <= 0 {
		frames = DefaultPayloadFrames
	}
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	return &stepper{
		target:        p.Target,
		state:         p.State,
		inspector:     p.Inspector,
		symbols:       p.Symbols,
		logger:        p.Logger.With("component", _nameKey),
		stats:         p.Stats.SubScope(_nameKey),
		clock:         c,
		payloadFrames: frames,
	}
}

func (s *stepper) Step(ctx context.Context, thread target.ThreadID, kind target.StepKind, timeout time.Duration) (entity.StepResult, error) {
	if !kind.Valid() {
		return entity.StepResult{}, errors.InvalidParams("unknown step kind %q", kind)
	}
	if timeout <= 0 {
		return entity.StepResult{}, errors.InvalidParams("timeout must be positive, got %s", timeout)
	}
	if !s.state.IsSuspended(thread) {
		return entity.StepResult{}, errors.InvalidState("thread %d is not suspended", thread)
	}
	s.stats.Counter("requests").Inc(1)

	if prev := s.state.ActiveStep(); prev != nil {
		// A step whose thread suspended again can no longer complete on its own.
		if !s.state.IsSuspended(prev.Thread) {
			return entity.StepResult{}, errors.InvalidState("a step is already in progress on thread %d", prev.Thread)
		}
		if s.state.TakeStepIf(prev) {
			s.clearWatch(ctx, prev.Watch)
			prev.Fulfill(prev.TimeoutResult(_supersededRemediation))
			s.stats.Counter("superseded").Inc(1)
		}
	}

	w, err := s.target.SetStepWatch(ctx, thread, kind, target.SuspendEventThread, 0)
	if err != nil {
		return entity.StepResult{}, errors.Internal("installing step watch", err)
	}
	step := model.NewActiveStep(thread, kind, w)
	if err := s.state.BeginStep(step); err != nil {
		s.clearWatch(ctx, w)
		return entity.StepResult{}, err
	}

	s.state.Unsuspend(thread)
	s.state.InvalidateHandles()
	if err := s.target.ResumeThread(ctx, thread); err != nil {
		if s.state.TakeStepIf(step) {
			s.clearWatch(ctx, w)
		}
		s.state.MarkSuspended(thread, s.clock.Now(), "")
		return entity.StepResult{}, errors.Internal("resuming thread for step", err)
	}
	s.logger.Debugw("step started", "thread", thread, "kind", kind)

	select {
	case result := <-step.Done():
		return result, nil
	case <-s.clock.After(timeout):
		s.stats.Counter("timeouts").Inc(1)
		s.logger.Infow("step timed out", "thread", thread, "kind", kind, "timeout", timeout)
		return step.TimeoutResult(fmt.Sprintf(_timeoutRemediation, timeout)), nil
	case <-ctx.Done():
		return entity.StepResult{}, ctx.Err()
	}
}

func (s *stepper) OnStepEvent(ctx context.Context, ev target.Event) bool {
	step := s.state.TakeStep(ev.Thread)
	if step == nil {
		s.logger.Debugw("step event without active step", "thread", ev.Thread)
		return true
	}
	s.clearWatch(ctx, step.Watch)

	location := mapper.LocationToString(ev.Location, s.symbols)
	frame := s.inspector.Capture(ctx, s.target, ev.Thread, inspector.CaptureOptions{
		MaxFrames:     s.payloadFrames,
		IncludeLocals: true,
		Symbols:       s.symbols,
		Identity:      s.state.AssignHandle,
	})
	s.state.MarkSuspended(ev.Thread, s.clock.Now(), location)

	if step.Fulfill(entity.StepResult{
		Status:   entity.StepCompleted,
		ThreadID: uint64(ev.Thread),
		Kind:     string(step.Kind),
		Frame:    &frame,
	}) {
		s.stats.Counter("completed").Inc(1)
	}
	return false
}

func (s *stepper) Abort(remediation string) bool {
	step := s.state.ClearStep()
	if step == nil {
		return false
	}
	step.Fulfill(step.TimeoutResult(remediation))
	s.stats.Counter("aborted").Inc(1)
	return true
}

// clearWatch removes a step watch. Step watches are single shot, so an unknown watch is expected.
func (s *stepper) clearWatch(ctx context.Context, w target.Watch) {
	if err := s.target.ClearWatch(ctx, w); err != nil && !stderr.Is(err, target.ErrUnknownWatch) {
		s.logger.Warnw("clearing step watch failed", "watch", w.ID, "error", err)
	}
}
