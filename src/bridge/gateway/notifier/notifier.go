// Package notifier pushes debugger notifications to the controller connection of a session.
package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/journal"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _errSendToClient = "sending notification to controller: %w"

// Module provides the notification gateway.
var Module = fx.Provide(New)

// Gateway is used to send outbound notifications to controllers.
// Notify routes by the session UUID carried in the context.
type Gateway interface {
	// RegisterClient registers the connection of a new controller session.
	RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error
	// DeregisterClient removes a controller session.
	DeregisterClient(ctx context.Context, id uuid.UUID) error
	// Notify sends n to the session in ctx and records it in the journal.
	Notify(ctx context.Context, n entity.Notification) error
	// SessionEmitter returns an Emitter bound to one session.
	SessionEmitter(id uuid.UUID) Emitter
}

// Emitter delivers notifications for one session. Delivery failures are logged, not returned.
type Emitter interface {
	Emit(ctx context.Context, n entity.Notification)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, n entity.Notification)

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context, n entity.Notification) {
	f(ctx, n)
}

// Params define values to be used by the gateway.
type Params struct {
	fx.In

	Journal journal.Journal
	Logger  *zap.SugaredLogger
	Stats   tally.Scope

	// Output mirrors logpoint hits as plain text lines when set.
	Output io.Writer `name:"logpointOutput" optional:"true"`
}

type gateway struct {
	connections   map[uuid.UUID]jsonrpc2.Conn
	connectionsMu sync.Mutex
	journal       journal.Journal
	output        io.Writer
	logger        *zap.SugaredLogger
	stats         tally.Scope
}

// New returns a Gateway for sending controller notifications.
func New(p Params) Gateway {
	return &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		journal:     p.Journal,
		output:      p.Output,
		logger:      p.Logger.Named("notifier"),
		stats:       p.Stats.SubScope("notifier"),
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error {
	g.connectionsMu.Lock()
	defer g.connectionsMu.Unlock()
	g.connections[id] = conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.connectionsMu.Lock()
	defer g.connectionsMu.Unlock()
	delete(g.connections, id)
	return nil
}

func (g *gateway) Notify(ctx context.Context, n entity.Notification) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}

	if err := g.journal.Append(ctx, id, n); err != nil {
		g.logger.Warnw("journal append failed", "session", id, "type", n.Type, "error", err)
	}
	g.writeOutput(id, n)

	conn, err := g.getConn(id)
	if err != nil {
		g.stats.Counter("dropped").Inc(1)
		return fmt.Errorf(_errSendToClient, err)
	}
	if err := conn.Notify(ctx, n.Type.Method(), n.Payload); err != nil {
		g.stats.Counter("send_errors").Inc(1)
		return fmt.Errorf(_errSendToClient, err)
	}
	g.stats.Tagged(map[string]string{"type": string(n.Type)}).Counter("sent").Inc(1)
	return nil
}

func (g *gateway) writeOutput(id uuid.UUID, n entity.Notification) {
	if g.output == nil || n.Type != entity.LogpointHit {
		return
	}
	p, ok := n.Payload.(entity.LogpointHitPayload)
	if !ok {
		return
	}
	if _, err := fmt.Fprintf(g.output, "%s [%s] %s: %s\n", id, p.ThreadName, p.Location, p.Message); err != nil {
		g.logger.Debugw("writing logpoint output failed", "session", id, "error", err)
	}
}

func (g *gateway) getConn(id uuid.UUID) (jsonrpc2.Conn, error) {
	g.connectionsMu.Lock()
	defer g.connectionsMu.Unlock()
	conn, ok := g.connections[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return conn, nil
}

func (g *gateway) SessionEmitter(id uuid.UUID) Emitter {
	return EmitterFunc(func(ctx context.Context, n entity.Notification) {
		sCtx := context.WithValue(ctx, entity.SessionContextKey, id)
		if err := g.Notify(sCtx, n); err != nil {
			g.logger.Warnw("notification not delivered", "session", id, "type", n.Type, "error", err)
		}
	})
}
