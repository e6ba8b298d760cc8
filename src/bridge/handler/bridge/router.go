package bridge

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/debugger"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"go.lsp.dev/jsonrpc2"
)

// JSON-RPC methods served by the bridge.
const (
	MethodAttach                    = "debug/attach"
	MethodDetach                    = "debug/detach"
	MethodSetBreakpoint             = "debug/setBreakpoint"
	MethodRemoveBreakpoint          = "debug/removeBreakpoint"
	MethodListBreakpoints           = "debug/listBreakpoints"
	MethodSetExceptionBreakpoint    = "debug/setExceptionBreakpoint"
	MethodRemoveExceptionBreakpoint = "debug/removeExceptionBreakpoint"
	MethodListExceptionBreakpoints  = "debug/listExceptionBreakpoints"
	MethodStep                      = "debug/step"
	MethodResume                    = "debug/resume"
	MethodThreads                   = "debug/threads"
	MethodInspect                   = "debug/inspect"
	MethodEvaluate                  = "debug/evaluate"
)

type route func(r *jsonRPCRouter, ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error

var _methods = map[string]route{
	// Attach related methods.
	MethodAttach: (*jsonRPCRouter).Attach,
	MethodDetach: (*jsonRPCRouter).Detach,

	// Breakpoint related methods.
	MethodSetBreakpoint:             (*jsonRPCRouter).SetBreakpoint,
	MethodRemoveBreakpoint:          (*jsonRPCRouter).RemoveBreakpoint,
	MethodListBreakpoints:           (*jsonRPCRouter).ListBreakpoints,
	MethodSetExceptionBreakpoint:    (*jsonRPCRouter).SetExceptionBreakpoint,
	MethodRemoveExceptionBreakpoint: (*jsonRPCRouter).RemoveExceptionBreakpoint,
	MethodListExceptionBreakpoints:  (*jsonRPCRouter).ListExceptionBreakpoints,

	// Execution control methods.
	MethodStep:    (*jsonRPCRouter).Step,
	MethodResume:  (*jsonRPCRouter).Resume,
	MethodThreads: (*jsonRPCRouter).Threads,

	// Inspection methods.
	MethodInspect:  (*jsonRPCRouter).Inspect,
	MethodEvaluate: (*jsonRPCRouter).Evaluate,
}

type jsonRPCRouter struct {
	debugger debugger.Controller
	uuid     uuid.UUID
	stats    tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	method, ok := _methods[req.Method()]
	if !ok {
		r.stats.Counter("unknown_methods").Inc(1)
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("requests").Inc(1)
	return method(r, ctx, reply, req)
}

// UUID returns the UUID of the session served by this router.
func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
