package debugger

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/entity"
)

// SetBreakpoint installs a line breakpoint or logpoint on the attached target.
func (c *controller) SetBreakpoint(ctx context.Context, req entity.SetBreakpointRequest) (entity.Breakpoint, error) {
	a, err := c.current(ctx)
	if err != nil {
		return entity.Breakpoint{}, err
	}
	return a.registry.SetBreakpoint(ctx, req)
}

// RemoveBreakpoint removes a line breakpoint.
func (c *controller) RemoveBreakpoint(ctx context.Context, id int64) error {
	a, err := c.current(ctx)
	if err != nil {
		return err
	}
	return a.registry.RemoveBreakpoint(ctx, id)
}

// ListBreakpoints returns a snapshot of the line breakpoints.
func (c *controller) ListBreakpoints(ctx context.Context) ([]entity.Breakpoint, error) {
	a, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return a.registry.ListBreakpoints(), nil
}

// SetExceptionBreakpoint installs an exception breakpoint on the attached target.
func (c *controller) SetExceptionBreakpoint(ctx context.Context, req entity.SetExceptionBreakpointRequest) (entity.ExceptionBreakpoint, error) {
	a, err := c.current(ctx)
	if err != nil {
		return entity.ExceptionBreakpoint{}, err
	}
	return a.registry.SetExceptionBreakpoint(ctx, req)
}

// RemoveExceptionBreakpoint removes an exception breakpoint.
func (c *controller) RemoveExceptionBreakpoint(ctx context.Context, id int64) error {
	a, err := c.current(ctx)
	if err != nil {
		return err
	}
	return a.registry.RemoveExceptionBreakpoint(ctx, id)
}

// ListExceptionBreakpoints returns a snapshot of the exception breakpoints.
func (c *controller) ListExceptionBreakpoints(ctx context.Context) ([]entity.ExceptionBreakpoint, error) {
	a, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return a.registry.ListExceptionBreakpoints(), nil
}
