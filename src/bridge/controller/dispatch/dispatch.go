// Package dispatch drains the event stream of an attached target, routes events to their handlers
// and owns disconnect handling for the session.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/clock"
	"github.com/uber/debug-bridge/src/bridge/repository/debugstate"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	_nameKey = "dispatch"

	// DefaultPollInterval bounds each wait on the event stream.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultJoinTimeout bounds how long Stop waits for the loop to exit.
	DefaultJoinTimeout = 2 * time.Second

	_disconnectRemediation = "The target disconnected (%s) before the step completed. Re-attach and set breakpoints again."
)

// BreakpointHandler receives breakpoint, exception and class-load events.
type BreakpointHandler interface {
	OnClassLoad(ctx context.Context, ev target.Event) bool
	OnBreakpointEvent(ctx context.Context, ev target.Event) bool
	OnExceptionEvent(ctx context.Context, ev target.Event) bool
}

// StepHandler receives step events and is told when the target goes away.
type StepHandler interface {
	OnStepEvent(ctx context.Context, ev target.Event) bool
	Abort(remediation string) bool
}

// Loop is the single consumer of a target's event stream.
type Loop interface {
	// Start launches the loop. Calls after the first are no-ops.
	Start()
	// Stop interrupts the loop and waits for it to exit, up to the join timeout or ctx, whichever ends first.
	Stop(ctx context.Context) error
	// Done is closed once the loop has exited.
	Done() <-chan struct{}
}

// Params define the collaborators of a loop.
type Params struct {
	Target       target.Target
	State        *debugstate.State
	Breakpoints  BreakpointHandler
	Stepper      StepHandler
	Emitter      notifier.Emitter
	Logger       *zap.SugaredLogger
	Stats        tally.Scope
	Clock        clock.Clock
	PollInterval time.Duration
	JoinTimeout  time.Duration
	// OnDisconnect runs once on the loop goroutine after the disconnect notification is emitted.
	OnDisconnect func(entity.VMDisconnectedPayload)
}

type loop struct {
	target       target.Target
	state        *debugstate.State
	breakpoints  BreakpointHandler
	stepper      StepHandler
	emitter      notifier.Emitter
	logger       *zap.SugaredLogger
	stats        tally.Scope
	clock        clock.Clock
	pollInterval time.Duration
	joinTimeout  time.Duration
	onDisconnect func(entity.VMDisconnectedPayload)

	ctx      context.Context
	cancel   context.CancelFunc
	started  *atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Loop. It does not start it.
func New(p Params) Loop {
	poll := p.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	join := p.JoinTimeout
	if join <= 0 {
		join = DefaultJoinTimeout
	}
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &loop{
		target:       p.Target,
		state:        p.State,
		breakpoints:  p.Breakpoints,
		stepper:      p.Stepper,
		emitter:      p.Emitter,
		logger:       p.Logger.With("component", _nameKey),
		stats:        p.Stats.SubScope(_nameKey),
		clock:        c,
		pollInterval: poll,
		joinTimeout:  join,
		onDisconnect: p.OnDisconnect,
		ctx:          ctx,
		cancel:       cancel,
		started:      atomic.NewBool(false),
		done:         make(chan struct{}),
	}
}

func (l *loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go l.run()
}

func (l *loop) Stop(ctx context.Context) error {
	l.stopOnce.Do(l.cancel)
	if !l.started.Load() {
		return nil
	}
	select {
	case <-l.done:
		return nil
	case <-l.clock.After(l.joinTimeout):
		l.logger.Warnw("dispatch loop did not stop in time", "timeout", l.joinTimeout)
		return fmt.Errorf("dispatch loop did not stop within %s", l.joinTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *loop) Done() <-chan struct{} {
	return l.done
}

func (l *loop) run() {
	defer close(l.done)
	l.logger.Debugw("dispatch loop started")

	for {
		if l.ctx.Err() != nil {
			l.logger.Debugw("dispatch loop stopped")
			return
		}
		set, err := l.target.NextEventSet(l.ctx, l.pollInterval)
		if err != nil {
			if l.ctx.Err() != nil {
				l.logger.Debugw("dispatch loop stopped")
				return
			}
			l.disconnect(err.Error())
			return
		}
		if set == nil {
			continue
		}
		if stop := l.dispatch(set); stop {
			return
		}
	}
}

// dispatch routes every event of a set and resumes the set when all handlers agree. It reports whether the loop must stop.
func (l *loop) dispatch(set *target.EventSet) bool {
	l.stats.Counter("event_sets").Inc(1)
	resume := true
	for _, ev := range set.Events {
		l.stats.Tagged(map[string]string{"kind": ev.Kind.String()}).Counter("events").Inc(1)
		switch ev.Kind {
		case target.EventVMDeath, target.EventVMDisconnect:
			detail := ev.Detail
			if detail == "" {
				detail = ev.Kind.String()
			}
			l.disconnect(detail)
			return true
		}
		if !l.handle(ev) {
			resume = false
		}
	}

	if !resume {
		l.stats.Counter("suspended").Inc(1)
		return false
	}
	if err := l.target.ResumeSet(l.ctx, set); err != nil {
		l.logger.Warnw("resuming event set failed", "set", set.ID, "error", err)
		return false
	}
	l.stats.Counter("resumed").Inc(1)
	return false
}

// handle runs the handler for one event. A panicking handler keeps the set suspended.
func (l *loop) handle(ev target.Event) (resume bool) {
	defer func() {
		if r := recover(); r != nil {
			l.stats.Counter("handler_panics").Inc(1)
			l.logger.Errorw("event handler panicked", "kind", ev.Kind.String(), "tag", ev.Tag, "panic", r)
			resume = false
		}
	}()

	switch ev.Kind {
	case target.EventBreakpoint:
		return l.breakpoints.OnBreakpointEvent(l.ctx, ev)
	case target.EventException:
		return l.breakpoints.OnExceptionEvent(l.ctx, ev)
	case target.EventClassPrepare:
		return l.breakpoints.OnClassLoad(l.ctx, ev)
	case target.EventStep:
		return l.stepper.OnStepEvent(l.ctx, ev)
	default:
		l.logger.Debugw("ignoring unknown event", "kind", ev.Kind.String())
		return true
	}
}

// disconnect records the loss of the target and tells everyone waiting on it. Only the first call has any effect.
func (l *loop) disconnect(detail string) {
	reason := Classify(detail)
	if !l.state.MarkDisconnected(reason, detail) {
		return
	}

	l.stepper.Abort(fmt.Sprintf(_disconnectRemediation, reason))
	l.state.ClearSuspended()
	l.state.InvalidateHandles()

	l.stats.Tagged(map[string]string{"reason": string(reason)}).Counter("disconnects").Inc(1)
	l.logger.Warnw("target disconnected", "reason", reason, "detail", detail)

	payload := entity.VMDisconnectedPayload{Reason: reason, Detail: detail}
	l.emitter.Emit(context.Background(), entity.Notification{Type: entity.VMDisconnected, Payload: payload})
	if l.onDisconnect != nil {
		l.onDisconnect(payload)
	}
}
