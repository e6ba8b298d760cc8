package debugger

import (
	"context"
	stderr "errors"
	"fmt"

	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
)

// Inspect serializes a handle, a value path or a whole frame, in that order of precedence.
func (c *controller) Inspect(ctx context.Context, req entity.InspectRequest) (*entity.Inspection, error) {
	a, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	depth, budget := c.inspector.Defaults()
	if req.Depth != nil {
		depth = *req.Depth
	}
	if req.Budget != nil {
		budget = *req.Budget
	}
	opts := inspector.Options{
		Depth:    depth,
		Budget:   budget,
		Identity: a.state.AssignHandle,
		Symbols:  c.symbols,
	}
	thread := target.ThreadID(req.ThreadID)

	switch {
	case req.Handle != "":
		v, ok := a.state.Handle(req.Handle)
		if !ok {
			return nil, errors.InvalidState("handle %q is unknown or expired", req.Handle)
		}
		return c.inspector.Value(ctx, a.target, req.Handle, v, opts)

	case req.Path != "":
		return c.inspectPath(ctx, a, thread, req, opts)

	default:
		return c.inspector.Frame(ctx, a.target, thread, req.Frame, opts)
	}
}

// inspectPath serializes the value at req.Path. Paths that do not resolve are InvalidParams; failures
// reading the target are Internal.
func (c *controller) inspectPath(ctx context.Context, a *attachment, thread target.ThreadID, req entity.InspectRequest, opts inspector.Options) (*entity.Inspection, error) {
	path, err := condition.ParsePath(req.Path)
	if err != nil {
		return nil, &errors.InvalidParamsError{Msg: fmt.Sprintf("invalid path %q", req.Path), Err: err}
	}
	if err := inspector.CheckFrame(ctx, a.target, thread, req.Frame); err != nil {
		if stderr.Is(err, target.ErrThreadNotSuspended) {
			return &entity.Inspection{Variables: []*entity.Node{}}, nil
		}
		return nil, err
	}

	v, err := c.inspector.Lookup(ctx, a.target, thread, req.Frame, path)
	var pathErr *inspector.PathError
	switch {
	case err == nil:
		return c.inspector.Value(ctx, a.target, req.Path, v, opts)
	case stderr.Is(err, target.ErrThreadNotSuspended):
		return &entity.Inspection{Variables: []*entity.Node{}}, nil
	case stderr.As(err, &pathErr):
		return nil, &errors.InvalidParamsError{Msg: fmt.Sprintf("resolving %q", req.Path), Err: err}
	default:
		return nil, errors.Internal(fmt.Sprintf("resolving %q", req.Path), err)
	}
}

// Evaluate evaluates an expression in a frame of a client-suspended thread.
// Syntax and evaluation failures are reported in the result, not as request errors.
func (c *controller) Evaluate(ctx context.Context, req entity.EvaluateRequest) (entity.EvaluateResult, error) {
	a, err := c.current(ctx)
	if err != nil {
		return entity.EvaluateResult{}, err
	}
	thread := target.ThreadID(req.ThreadID)
	if !a.state.IsSuspended(thread) {
		return entity.EvaluateResult{}, errors.InvalidState("thread %d is not suspended", thread)
	}

	prog, err := condition.Compile(req.Expression)
	if err != nil {
		return entity.EvaluateResult{Error: err.Error()}, nil
	}
	v, err := prog.Value(c.inspector.Resolver(ctx, a.target, thread, req.Frame, c.symbols))
	if err != nil {
		return entity.EvaluateResult{Error: err.Error()}, nil
	}
	return entity.EvaluateResult{
		OK:    true,
		Type:  v.Kind().String(),
		Value: v.Interface(),
	}, nil
}
