package debugger

import (
	"context"
	"net/url"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber/debug-bridge/src/bridge/controller/breakpoints"
	"github.com/uber/debug-bridge/src/bridge/controller/dispatch"
	"github.com/uber/debug-bridge/src/bridge/controller/stepping"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/repository/debugstate"
)

// AttachAddress opens a target through the connector registered for the address scheme and attaches to it.
func (c *controller) AttachAddress(ctx context.Context, req entity.AttachRequest) (entity.AttachResult, error) {
	if req.Address == "" {
		return entity.AttachResult{}, errors.InvalidParams("address must not be empty")
	}
	u, err := url.Parse(req.Address)
	if err != nil {
		return entity.AttachResult{}, &errors.InvalidParamsError{Msg: "invalid address", Err: err}
	}
	conn, ok := c.connectors[u.Scheme]
	if !ok {
		return entity.AttachResult{}, errors.InvalidParams("no connector for address scheme %q", u.Scheme)
	}

	// Fail fast before opening a connection that would be thrown away.
	if _, err := c.current(ctx); err == nil {
		return entity.AttachResult{}, errors.ErrAlreadyAttached
	}

	tgt, err := conn.Connect(ctx, req.Address)
	if err != nil {
		return entity.AttachResult{}, errors.Internal("connecting to "+req.Address, err)
	}
	result, err := c.Attach(ctx, req.Address, tgt)
	if err != nil {
		if dErr := tgt.Dispose(ctx); dErr != nil {
			c.logger.Warnw("disposing unused target failed", "address", req.Address, "error", dErr)
		}
		return entity.AttachResult{}, err
	}
	return result, nil
}

// Attach binds an open target to the session in ctx and starts its dispatch loop.
// A session whose previous target disconnected may attach again; the stale attachment is torn down first.
func (c *controller) Attach(ctx context.Context, address string, tgt target.Target) (entity.AttachResult, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return entity.AttachResult{}, err
	}
	if _, err := c.sessions.Get(ctx, id); err != nil {
		return entity.AttachResult{}, err
	}

	a := c.newAttachment(id, address, tgt)

	c.mu.Lock()
	stale, ok := c.attachments[id]
	if ok {
		if _, disconnected := stale.state.Disconnected(); !disconnected {
			c.mu.Unlock()
			return entity.AttachResult{}, errors.ErrAlreadyAttached
		}
	}
	c.attachments[id] = a
	c.stats.Gauge("attached").Update(float64(len(c.attachments)))
	c.mu.Unlock()

	if stale != nil {
		c.teardown(ctx, id, stale)
	}

	a.loop.Start()
	c.stats.Counter("attaches").Inc(1)
	c.logger.Infow("attached", "session", id, "address", address)
	return entity.AttachResult{
		SessionID:  id,
		Address:    address,
		AttachedAt: a.attachedAt,
	}, nil
}

// Detach releases the target of the session in ctx. The target keeps running.
func (c *controller) Detach(ctx context.Context) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}
	a := c.take(id)
	if a == nil {
		return errors.ErrNotAttached
	}
	c.teardown(ctx, id, a)
	return nil
}

func (c *controller) newAttachment(id uuid.UUID, address string, tgt target.Target) *attachment {
	state := debugstate.New()
	emitter := c.notifier.SessionEmitter(id)
	logger := c.logger.With("session", id)

	registry := breakpoints.New(breakpoints.Params{
		Target:    tgt,
		State:     state,
		Inspector: c.inspector,
		Emitter:   emitter,
		Symbols:   c.symbols,
		Logger:    logger,
		Stats:     c.stats,
		Clock:     c.clock,
		Limits: breakpoints.Limits{
			StackMaxFrames: c.cfg.StackMaxFrames,
			PayloadFrames:  c.cfg.PayloadFrames,
		},
	})
	stepper := stepping.New(stepping.Params{
		Target:        tgt,
		State:         state,
		Inspector:     c.inspector,
		Symbols:       c.symbols,
		Logger:        logger,
		Stats:         c.stats,
		Clock:         c.clock,
		PayloadFrames: c.cfg.PayloadFrames,
	})
	loop := dispatch.New(dispatch.Params{
		Target:       tgt,
		State:        state,
		Breakpoints:  registry,
		Stepper:      stepper,
		Emitter:      emitter,
		Logger:       logger,
		Stats:        c.stats,
		Clock:        c.clock,
		PollInterval: time.Duration(c.cfg.PollIntervalMs) * time.Millisecond,
		JoinTimeout:  time.Duration(c.cfg.JoinTimeoutMs) * time.Millisecond,
		OnDisconnect: func(p entity.VMDisconnectedPayload) {
			c.logger.Infow("target lost, re-attach to continue", "session", id, "reason", p.Reason)
		},
	})

	return &attachment{
		address:    address,
		attachedAt: c.clock.Now(),
		target:     tgt,
		state:      state,
		registry:   registry,
		stepper:    stepper,
		loop:       loop,
	}
}
