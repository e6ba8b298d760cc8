package bridge

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Attach connects to the target at the requested address and binds it to this session.
func (r *jsonRPCRouter) Attach(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToAttachRequest(req)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	result, err := r.debugger.AttachAddress(ctx, *params)
	if err != nil {
		return reply(ctx, nil, mapper.ToWireError(err))
	}

	return reply(ctx, result, nil)
}

// Detach releases the target of this session and lets it run freely.
func (r *jsonRPCRouter) Detach(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.debugger.Detach(ctx)
	return reply(ctx, nil, mapper.ToWireError(err))
}
