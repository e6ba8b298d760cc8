package bridge

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

// SetBreakpoint registers a line breakpoint or logpoint.
// A breakpoint on a class that is not loaded yet is returned as pending rather than failing.
func (r *jsonRPCRouter) SetBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetBreakpointRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.SetBreakpoint(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

// RemoveBreakpoint removes a breakpoint by id.
func (r *jsonRPCRouter) RemoveBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRemoveRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	err = r.debugger.RemoveBreakpoint(ctx, params.ID)
	return reply(ctx, nil, mapper.ToWireError(err))
}

// ListBreakpoints returns a snapshot of every breakpoint of the session.
func (r *jsonRPCRouter) ListBreakpoints(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.debugger.ListBreakpoints(ctx)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) SetExceptionBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetExceptionBreakpointRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.SetExceptionBreakpoint(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) RemoveExceptionBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRemoveRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	err = r.debugger.RemoveExceptionBreakpoint(ctx, params.ID)
	return reply(ctx, nil, mapper.ToWireError(err))
}

func (r *jsonRPCRouter) ListExceptionBreakpoints(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.debugger.ListExceptionBreakpoints(ctx)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}
