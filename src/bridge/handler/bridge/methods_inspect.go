package bridge

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Inspect renders a frame, a path within a frame, or a previously returned handle.
func (r *jsonRPCRouter) Inspect(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInspectRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.Inspect(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

// Evaluate runs a condition expression against a suspended frame. Expression failures are part of the result.
func (r *jsonRPCRouter) Evaluate(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToEvaluateRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.Evaluate(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}
