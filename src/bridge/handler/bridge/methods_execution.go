package bridge

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Step performs a single step on a suspended thread and replies once the step completes or times out.
func (r *jsonRPCRouter) Step(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToStepRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.Step(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

// Resume resumes one client-suspended thread, or all of them when no thread is given.
func (r *jsonRPCRouter) Resume(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToResumeRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.Resume(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

// Threads lists the threads currently suspended on behalf of the client.
func (r *jsonRPCRouter) Threads(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.debugger.Threads(ctx)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}
