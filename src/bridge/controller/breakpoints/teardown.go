package breakpoints

import (
	"context"
	stderr "errors"

	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"go.uber.org/multierr"
)

const _clearedRemediation = "The step was cancelled because all breakpoints were cleared. Suspend the thread again before stepping."

// clearWatches removes watches from the target on a best-effort basis. Watches the target no longer
// knows are ignored; other failures are logged and dropped.
func (r *registry) clearWatches(ctx context.Context, watches ...target.Watch) {
	var errs error
	for _, w := range watches {
		err := r.target.ClearWatch(ctx, w)
		if err == nil || stderr.Is(err, target.ErrUnknownWatch) {
			continue
		}
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		r.stats.Counter("teardown_errors").Inc(int64(len(multierr.Errors(errs))))
		r.logger.Warnw("clearing watches failed", "error", errs)
	}
}

func (r *registry) ClearBreakpointRequests(ctx context.Context) {
	var watches []target.Watch
	for _, bp := range r.state.TakeBreakpoints() {
		watches = append(watches, bp.Watches()...)
	}
	r.clearWatches(ctx, watches...)
	r.resetSuspension(ctx)
}

func (r *registry) ClearExceptionBreakpointRequests(ctx context.Context) {
	var watches []target.Watch
	for _, bp := range r.state.TakeExceptionBreakpoints() {
		watches = append(watches, bp.Watches()...)
	}
	r.clearWatches(ctx, watches...)
	r.resetSuspension(ctx)
}

// resetSuspension cancels the active step and forgets client-suspended threads and inspection handles.
func (r *registry) resetSuspension(ctx context.Context) {
	if step := r.state.ClearStep(); step != nil {
		r.clearWatches(ctx, step.Watch)
		step.Fulfill(step.TimeoutResult(_clearedRemediation))
	}
	r.state.ClearSuspended()
	r.state.InvalidateHandles()
}
