// Package bridge implements the debug bridge's JSON-RPC command surface.
package bridge

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/debugger"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/internal/jsonrpcfx"
	"go.lsp.dev/jsonrpc2"
)

// Handler represents the bridge's JSON-RPC API.
type Handler interface {
	// Methods lists the JSON-RPC methods served to every connection.
	Methods() []string
}

type handler struct {
	debugger          debugger.Controller
	connectionManager jsonrpcfx.ConnectionManager
	stats             tally.Scope
}

// New constructs a new bridge Handler and registers its connection manager with the JSON-RPC module.
func New(ctrl debugger.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, stats tally.Scope) (Handler, error) {
	c := jsonRPCConnectionManager{
		ctrl:  ctrl,
		stats: stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(&c); err != nil {
		return nil, err
	}

	return &handler{
		debugger:          ctrl,
		connectionManager: &c,
		stats:             stats,
	}, nil
}

func (h *handler) Methods() []string {
	methods := make([]string, 0, len(_methods))
	for m := range _methods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

type jsonRPCConnectionManager struct {
	ctrl  debugger.Controller
	stats tally.Scope
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	c.stats.Counter("connections").Inc(1)

	r := jsonRPCRouter{
		debugger: c.ctrl,
		uuid:     id,
		stats:    c.stats,
	}

	return &r, nil
}

// RemoveConnection cleans up a closed connection, detaching its target if one is still attached.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	if err := c.ctrl.EndSession(ctx, id); err != nil {
		c.stats.Counter("end_session_errors").Inc(1)
	}
}
