package breakpoints

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/model"
)

const (
	_allExceptions = "*"
	_messageField  = "detailMessage"
)

func (r *registry) SetExceptionBreakpoint(ctx context.Context, req entity.SetExceptionBreakpointRequest) (entity.ExceptionBreakpoint, error) {
	if !req.Caught && !req.Uncaught {
		return entity.ExceptionBreakpoint{}, errors.InvalidParams("at least one of caught or uncaught must be set")
	}
	all := matchesAllExceptions(req.ClassPattern)
	if !all && isWildcard(req.ClassPattern) {
		return entity.ExceptionBreakpoint{}, errors.InvalidParams("classPattern must be an exact class name or %q, got %q", _allExceptions, req.ClassPattern)
	}

	bp := &model.ExceptionBreakpoint{
		ID:           r.state.NextID(),
		ClassPattern: req.ClassPattern,
		Caught:       req.Caught,
		Uncaught:     req.Uncaught,
		Status:       entity.StatusPending,
		Reason:       entity.ReasonClassNotLoaded,
	}
	// Stored before any watch exists, like line breakpoints.
	record := *bp
	r.state.PutExceptionBreakpoint(bp)

	set, err := r.installExceptionWatch(ctx, record, all)
	if err != nil {
		r.rollbackExceptionBreakpoint(ctx, record.ID)
		return entity.ExceptionBreakpoint{}, err
	}
	if !set && !all {
		w, err := r.target.SetClassLoadWatch(ctx, record.ClassPattern, target.SuspendNone, record.ID)
		if err != nil {
			r.rollbackExceptionBreakpoint(ctx, record.ID)
			return entity.ExceptionBreakpoint{}, errors.Internal("installing class load watch", err)
		}
		if !r.state.AttachExceptionLoadWatch(record.ID, w) {
			r.clearWatches(ctx, w)
		} else if _, err := r.installExceptionWatch(ctx, record, false); err != nil {
			r.logger.Debugw("re-checking pending exception breakpoint failed", "id", record.ID, "error", err)
		}
	}

	stored, ok := r.state.ExceptionBreakpoint(record.ID)
	if !ok {
		return entity.ExceptionBreakpoint{}, errors.InvalidState("exception breakpoint %d was removed while it was being installed", record.ID)
	}
	if stored.Status == entity.StatusPending {
		r.stats.Counter("exception_pending").Inc(1)
		r.logger.Infow("exception breakpoint pending", "id", record.ID, "classPattern", record.ClassPattern)
	}
	return mapper.ExceptionBreakpointToEntity(stored), nil
}

// installExceptionWatch moves a stored pending exception breakpoint to set. A breakpoint for all
// exceptions always qualifies; otherwise the exact class must be loaded.
func (r *registry) installExceptionWatch(ctx context.Context, bp model.ExceptionBreakpoint, all bool) (bool, error) {
	var class *target.ClassRef
	name := _allExceptions
	if !all {
		classes, err := r.target.ClassesByName(ctx, bp.ClassPattern)
		if err != nil {
			return false, errors.Internal("resolving exception class", err)
		}
		if len(classes) == 0 {
			return false, nil
		}
		class = &classes[0]
		name = mapper.ClassName(class.Name, r.symbols)
	}

	w, err := r.target.SetExceptionWatch(ctx, class, bp.Caught, bp.Uncaught, target.SuspendEventThread, bp.ID)
	if err != nil {
		return false, errors.Internal("installing exception watch", err)
	}
	loadWatch, ok := r.state.ResolveExceptionBreakpoint(bp.ID, name, w)
	if !ok {
		r.clearWatches(ctx, w)
		return false, nil
	}
	if loadWatch != nil {
		r.clearWatches(ctx, *loadWatch)
	}
	r.stats.Counter("exception_set").Inc(1)
	r.logger.Infow("exception breakpoint set", "id", bp.ID, "class", name)
	return true, nil
}

func (r *registry) rollbackExceptionBreakpoint(ctx context.Context, id int64) {
	if bp, ok := r.state.RemoveExceptionBreakpoint(id); ok {
		r.clearWatches(ctx, bp.Watches()...)
	}
}

func (r *registry) RemoveExceptionBreakpoint(ctx context.Context, id int64) error {
	bp, ok := r.state.RemoveExceptionBreakpoint(id)
	if !ok {
		return errors.InvalidState("unknown exception breakpoint id %d", id)
	}
	r.clearWatches(ctx, bp.Watches()...)
	r.logger.Infow("exception breakpoint removed", "id", id)
	return nil
}

func (r *registry) resolvePendingExceptions(ctx context.Context, class target.ClassRef) {
	for _, bp := range r.state.PendingExceptionBreakpoints() {
		if matchesAllExceptions(bp.ClassPattern) || bp.ClassPattern != class.Name {
			continue
		}
		w, err := r.target.SetExceptionWatch(ctx, &class, bp.Caught, bp.Uncaught, target.SuspendEventThread, bp.ID)
		if err != nil {
			r.logger.Warnw("installing exception watch failed", "id", bp.ID, "error", err)
			continue
		}
		name := mapper.ClassName(class.Name, r.symbols)
		loadWatch, ok := r.state.ResolveExceptionBreakpoint(bp.ID, name, w)
		if !ok {
			r.clearWatches(ctx, w)
			continue
		}
		if loadWatch != nil {
			r.clearWatches(ctx, *loadWatch)
		}

		r.stats.Counter("exception_resolved").Inc(1)
		r.logger.Infow("exception breakpoint resolved", "id", bp.ID, "class", name)
		r.emit(ctx, entity.ExceptionBreakpointResolved, entity.ExceptionBreakpointResolvedPayload{ID: bp.ID, ClassName: name})
	}
}

func (r *registry) OnExceptionEvent(ctx context.Context, ev target.Event) bool {
	bp, ok := r.state.ExceptionBreakpoint(ev.Tag)
	if !ok || ev.Exception == nil {
		return true
	}
	ex := ev.Exception

	payload := entity.ExceptionHitPayload{
		ID:             bp.ID,
		ExceptionClass: mapper.ClassName(ex.Class.Name, r.symbols),
		Message:        r.exceptionMessage(ctx, ex.Object),
		ThrowLocation:  r.location(ev.Location),
		Caught:         ex.Catch != nil,
	}
	if ex.Catch != nil {
		payload.CatchLocation = r.location(*ex.Catch)
	}
	payload.Frame = r.stoppedFrame(ctx, ev.Thread)

	r.state.MarkSuspended(ev.Thread, r.clock.Now(), payload.ThrowLocation)
	r.stats.Counter("exception_hits").Inc(1)
	r.emit(ctx, entity.ExceptionHit, payload)
	return false
}

// exceptionMessage reads the detail message of a throwable. It returns nil when the message is absent or unreadable.
func (r *registry) exceptionMessage(ctx context.Context, obj target.ObjectID) *string {
	v, ok, err := inspector.ReadField(ctx, r.target, target.ObjectRef(obj), _messageField)
	if err != nil || !ok || v.Kind != target.KindString {
		return nil
	}
	s, err := r.target.StringValue(ctx, v.Object)
	if err != nil {
		return nil
	}
	return &s
}
