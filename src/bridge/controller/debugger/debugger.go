// Package debugger implements the debug bridge business logic: one attached target per controller session.
package debugger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/breakpoints"
	"github.com/uber/debug-bridge/src/bridge/controller/dispatch"
	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/controller/stepping"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/clock"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/repository/debugstate"
	"github.com/uber/debug-bridge/src/bridge/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_configKey = "debugger"
	_nameKey   = "debugger"

	_detachRemediation = "The session detached before the step completed."
)

// Module provides the debugger controller.
var Module = fx.Provide(New)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// Attach methods.
	Attach(ctx context.Context, address string, tgt target.Target) (entity.AttachResult, error)
	AttachAddress(ctx context.Context, req entity.AttachRequest) (entity.AttachResult, error)
	Detach(ctx context.Context) error

	// Breakpoint methods.
	SetBreakpoint(ctx context.Context, req entity.SetBreakpointRequest) (entity.Breakpoint, error)
	RemoveBreakpoint(ctx context.Context, id int64) error
	ListBreakpoints(ctx context.Context) ([]entity.Breakpoint, error)
	SetExceptionBreakpoint(ctx context.Context, req entity.SetExceptionBreakpointRequest) (entity.ExceptionBreakpoint, error)
	RemoveExceptionBreakpoint(ctx context.Context, id int64) error
	ListExceptionBreakpoints(ctx context.Context) ([]entity.ExceptionBreakpoint, error)

	// Execution control methods.
	Step(ctx context.Context, req entity.StepRequest) (entity.StepResult, error)
	Resume(ctx context.Context, req entity.ResumeRequest) (entity.ResumeResult, error)
	Threads(ctx context.Context) ([]entity.SuspendedThread, error)

	// Inspection methods.
	Inspect(ctx context.Context, req entity.InspectRequest) (*entity.Inspection, error)
	Evaluate(ctx context.Context, req entity.EvaluateRequest) (entity.EvaluateResult, error)

	// Custom methods for use within this service.
	InitSession(ctx context.Context, conn jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Config is the debugger configuration block.
type Config struct {
	PollIntervalMs int `yaml:"pollIntervalMs"`
	JoinTimeoutMs  int `yaml:"joinTimeoutMs"`
	StepTimeoutMs  int `yaml:"stepTimeoutMs"`
	StackMaxFrames int `yaml:"stackMaxFrames"`
	PayloadFrames  int `yaml:"payloadFrames"`
}

// DefaultConfig returns the built-in timings and limits.
func DefaultConfig() Config {
	return Config{
		PollIntervalMs: int(dispatch.DefaultPollInterval / time.Millisecond),
		JoinTimeoutMs:  int(dispatch.DefaultJoinTimeout / time.Millisecond),
		StepTimeoutMs:  5000,
		StackMaxFrames: breakpoints.DefaultStackMaxFrames,
		PayloadFrames:  breakpoints.DefaultPayloadFrames,
	}
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config     config.Provider
	Lifecycle  fx.Lifecycle
	Sessions   session.Repository
	Notifier   notifier.Gateway
	Inspector  inspector.Inspector
	Symbols    symbolmap.Store    `optional:"true"`
	Connectors []target.Connector `group:"connectors"`
	Clock      clock.Clock        `optional:"true"`
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type controller struct {
	cfg        Config
	sessions   session.Repository
	notifier   notifier.Gateway
	inspector  inspector.Inspector
	symbols    symbolmap.Mapping
	connectors map[string]target.Connector
	clock      clock.Clock
	logger     *zap.SugaredLogger
	stats      tally.Scope

	mu          sync.Mutex
	attachments map[uuid.UUID]*attachment
}

// attachment is everything owned by one attached target.
type attachment struct {
	address    string
	attachedAt time.Time
	target     target.Target
	state      *debugstate.State
	registry   breakpoints.Registry
	stepper    stepping.Stepper
	loop       dispatch.Loop
}

// New constructs the debugger controller.
func New(p Params) (Controller, error) {
	cfg := DefaultConfig()
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}
	if cfg.PollIntervalMs <= 0 || cfg.JoinTimeoutMs <= 0 || cfg.StepTimeoutMs <= 0 || cfg.StackMaxFrames <= 0 || cfg.PayloadFrames <= 0 {
		return nil, fmt.Errorf("invalid %q config: timings and limits must be positive", _configKey)
	}

	connectors := make(map[string]target.Connector, len(p.Connectors))
	for _, conn := range p.Connectors {
		if _, ok := connectors[conn.Scheme()]; ok {
			return nil, fmt.Errorf("duplicate connector for scheme %q", conn.Scheme())
		}
		connectors[conn.Scheme()] = conn
	}

	var symbols symbolmap.Mapping = symbolmap.Identity
	if p.Symbols != nil {
		symbols = p.Symbols
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}

	c := &controller{
		cfg:         cfg,
		sessions:    p.Sessions,
		notifier:    p.Notifier,
		inspector:   p.Inspector,
		symbols:     symbols,
		connectors:  connectors,
		clock:       clk,
		logger:      p.Logger.With("component", _nameKey),
		stats:       p.Stats.SubScope(_nameKey),
		attachments: make(map[uuid.UUID]*attachment),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			c.detachAll(ctx)
			return nil
		},
	})
	return c, nil
}

// InitSession creates a new session for a controller connection and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn jsonrpc2.Conn) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	if err := c.notifier.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}
	s := &entity.Session{
		UUID:        id,
		Conn:        conn,
		ConnectedAt: c.clock.Now(),
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		return uuid.Nil, err
	}
	c.logger.Infow("session started", "session", id)
	return id, nil
}

// EndSession detaches any target of the session and forgets the session.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	if a := c.take(id); a != nil {
		c.teardown(ctx, id, a)
	}

	if err := c.notifier.DeregisterClient(ctx, id); err != nil {
		c.logger.Warnw("deregistering client failed", "session", id, "error", err)
	}
	c.logger.Infow("session ended", "session", id)
	return c.sessions.Delete(ctx, id)
}

// current returns the attachment of the session in ctx. A disconnected target is reported as DisconnectedError.
func (c *controller) current(ctx context.Context) (*attachment, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	a, ok := c.attachments[id]
	c.mu.Unlock()
	if !ok {
		return nil, errors.ErrNotAttached
	}
	if d, ok := a.state.Disconnected(); ok {
		return nil, &errors.DisconnectedError{Reason: string(d.Reason), Detail: d.Detail}
	}
	return a, nil
}

// take removes and returns the attachment of a session, or nil.
func (c *controller) take(id uuid.UUID) *attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.attachments[id]
	if !ok {
		return nil
	}
	delete(c.attachments, id)
	c.stats.Gauge("attached").Update(float64(len(c.attachments)))
	return a
}

// teardown releases an attachment. Every step is best effort; failures are logged once and never returned.
func (c *controller) teardown(ctx context.Context, id uuid.UUID, a *attachment) {
	var err error
	err = multierr.Append(err, a.loop.Stop(ctx))

	a.registry.ClearBreakpointRequests(ctx)
	a.registry.ClearExceptionBreakpointRequests(ctx)
	a.stepper.Abort(_detachRemediation)
	a.state.ClearSuspended()
	a.state.InvalidateHandles()

	if _, disconnected := a.state.Disconnected(); !disconnected {
		err = multierr.Append(err, a.target.ResumeAll(ctx))
	}
	err = multierr.Append(err, a.target.Dispose(ctx))

	c.stats.Counter("detaches").Inc(1)
	if err != nil {
		c.logger.Warnw("detach completed with errors", "session", id, "address", a.address, "error", err)
		return
	}
	c.logger.Infow("detached", "session", id, "address", a.address)
}

func (c *controller) detachAll(ctx context.Context) {
	c.mu.Lock()
	all := c.attachments
	c.attachments = make(map[uuid.UUID]*attachment)
	c.stats.Gauge("attached").Update(0)
	c.mu.Unlock()

	for id, a := range all {
		c.teardown(ctx, id, a)
	}
}
