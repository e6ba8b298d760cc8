package breakpoints

import (
	"context"
	"strings"

	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"github.com/uber/debug-bridge/src/bridge/model"
)

func validateBreakpoint(req entity.SetBreakpointRequest) (*condition.Program, error) {
	if strings.TrimSpace(req.ClassPattern) == "" {
		return nil, errors.InvalidParams("classPattern is required")
	}
	if req.Line <= 0 {
		return nil, errors.InvalidParams("line must be positive, got %d", req.Line)
	}
	if req.StackMaxFrames != nil && *req.StackMaxFrames <= 0 {
		return nil, errors.InvalidParams("stackMaxFrames must be positive, got %d", *req.StackMaxFrames)
	}
	if req.LogMessage != nil && *req.LogMessage == "" {
		return nil, errors.InvalidParams("logMessage must not be empty")
	}
	if req.CaptureStack && req.LogMessage == nil {
		return nil, errors.InvalidParams("captureStack requires logMessage")
	}
	if req.Condition == nil {
		return nil, nil
	}
	prog, err := condition.Compile(*req.Condition)
	if err != nil {
		return nil, &errors.InvalidParamsError{Msg: "invalid condition", Err: err}
	}
	return prog, nil
}

func (r *registry) SetBreakpoint(ctx context.Context, req entity.SetBreakpointRequest) (entity.Breakpoint, error) {
	prog, err := validateBreakpoint(req)
	if err != nil {
		return entity.Breakpoint{}, err
	}

	bp := &model.Breakpoint{
		ID:             r.state.NextID(),
		ClassPattern:   req.ClassPattern,
		Line:           req.Line,
		Compiled:       prog,
		CaptureStack:   req.CaptureStack,
		StackMaxFrames: r.limits.StackMaxFrames,
		Status:         entity.StatusPending,
		Reason:         entity.ReasonClassNotLoaded,
	}
	if req.Condition != nil {
		bp.Condition = *req.Condition
	}
	if req.LogMessage != nil {
		bp.LogMessage = *req.LogMessage
	}
	if req.StackMaxFrames != nil {
		bp.StackMaxFrames = *req.StackMaxFrames
	}

	// The record is stored before any watch exists so that events racing the install find it.
	// The state owns bp from here on and only the copy is read.
	record := *bp
	r.state.PutBreakpoint(bp)

	set, err := r.installLineWatch(ctx, record)
	if err != nil {
		r.rollbackBreakpoint(ctx, record.ID)
		return entity.Breakpoint{}, err
	}
	if !set {
		w, err := r.target.SetClassLoadWatch(ctx, record.ClassPattern, target.SuspendNone, record.ID)
		if err != nil {
			r.rollbackBreakpoint(ctx, record.ID)
			return entity.Breakpoint{}, errors.Internal("installing class load watch", err)
		}
		if !r.state.AttachBreakpointLoadWatch(record.ID, w) {
			// Resolved by a class load, or removed, while the watch was installed.
			r.clearWatches(ctx, w)
		} else if _, err := r.installLineWatch(ctx, record); err != nil {
			// The class may have loaded before the watch existed; a failed re-check leaves it pending.
			r.logger.Debugw("re-checking pending breakpoint failed", "id", record.ID, "error", err)
		}
	}

	stored, ok := r.state.Breakpoint(record.ID)
	if !ok {
		return entity.Breakpoint{}, errors.InvalidState("breakpoint %d was removed while it was being installed", record.ID)
	}
	if stored.Status == entity.StatusPending {
		r.stats.Counter("pending").Inc(1)
		r.logger.Infow("breakpoint pending", "id", record.ID, "classPattern", record.ClassPattern, "line", record.Line)
	}
	return mapper.BreakpointToEntity(stored), nil
}

// installLineWatch moves a stored pending breakpoint to set when a loaded class has code at its line.
// It reports false when no class qualifies or when the breakpoint stopped being pending meanwhile.
func (r *registry) installLineWatch(ctx context.Context, bp model.Breakpoint) (bool, error) {
	loc, found, err := r.findLine(ctx, bp.ClassPattern, bp.Line)
	if err != nil {
		return false, errors.Internal("resolving breakpoint location", err)
	}
	if !found {
		return false, nil
	}
	w, err := r.target.SetLineWatch(ctx, loc, target.SuspendEventThread, bp.ID)
	if err != nil {
		return false, errors.Internal("installing line watch", err)
	}
	location := r.location(loc)
	loadWatch, ok := r.state.ResolveBreakpoint(bp.ID, location, w)
	if !ok {
		r.clearWatches(ctx, w)
		return false, nil
	}
	if loadWatch != nil {
		r.clearWatches(ctx, *loadWatch)
	}
	r.stats.Counter("set").Inc(1)
	r.logger.Infow("breakpoint set", "id", bp.ID, "location", location)
	return true, nil
}

// rollbackBreakpoint forgets a breakpoint whose installation failed, along with any watch it gained meanwhile.
func (r *registry) rollbackBreakpoint(ctx context.Context, id int64) {
	if bp, ok := r.state.RemoveBreakpoint(id); ok {
		r.clearWatches(ctx, bp.Watches()...)
	}
}

// findLine looks for an executable line in the loaded classes matching pattern.
// When several classes match, the first one reported by the target wins.
func (r *registry) findLine(ctx context.Context, pattern string, line int) (target.Location, bool, error) {
	classes, err := r.loadedMatching(ctx, pattern)
	if err != nil {
		return target.Location{}, false, err
	}
	for _, class := range classes {
		locs, err := r.target.LineLocations(ctx, class, line)
		if err != nil {
			r.logger.Debugw("reading line table failed", "class", class.Name, "error", err)
			continue
		}
		if len(locs) > 0 {
			return locs[0], true, nil
		}
	}
	return target.Location{}, false, nil
}

func (r *registry) loadedMatching(ctx context.Context, pattern string) ([]target.ClassRef, error) {
	if !isWildcard(pattern) {
		return r.target.ClassesByName(ctx, pattern)
	}
	all, err := r.target.LoadedClasses(ctx)
	if err != nil {
		return nil, err
	}
	match := compilePattern(pattern)
	var out []target.ClassRef
	for _, c := range all {
		if match(c.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *registry) RemoveBreakpoint(ctx context.Context, id int64) error {
	bp, ok := r.state.RemoveBreakpoint(id)
	if !ok {
		return errors.InvalidState("unknown breakpoint id %d", id)
	}
	r.clearWatches(ctx, bp.Watches()...)
	r.logger.Infow("breakpoint removed", "id", id)
	return nil
}

// resolvePending installs line watches for pending breakpoints that the loaded class satisfies.
func (r *registry) resolvePending(ctx context.Context, class target.ClassRef) {
	for _, bp := range r.state.PendingBreakpoints() {
		if !Matches(bp.ClassPattern, class.Name) {
			continue
		}
		locs, err := r.target.LineLocations(ctx, class, bp.Line)
		if err != nil {
			r.logger.Debugw("reading line table failed", "class", class.Name, "error", err)
			continue
		}
		if len(locs) == 0 {
			continue
		}

		w, err := r.target.SetLineWatch(ctx, locs[0], target.SuspendEventThread, bp.ID)
		if err != nil {
			r.logger.Warnw("installing line watch failed", "id", bp.ID, "error", err)
			continue
		}
		location := r.location(locs[0])
		loadWatch, ok := r.state.ResolveBreakpoint(bp.ID, location, w)
		if !ok {
			// Removed or resolved concurrently.
			r.clearWatches(ctx, w)
			continue
		}
		if loadWatch != nil {
			r.clearWatches(ctx, *loadWatch)
		}

		r.stats.Counter("resolved").Inc(1)
		r.logger.Infow("breakpoint resolved", "id", bp.ID, "location", location)
		r.emit(ctx, entity.BreakpointResolved, entity.BreakpointResolvedPayload{ID: bp.ID, Location: location})
	}
}

func (r *registry) OnClassLoad(ctx context.Context, ev target.Event) bool {
	r.resolvePending(ctx, ev.Class)
	r.resolvePendingExceptions(ctx, ev.Class)
	return true
}

func (r *registry) OnBreakpointEvent(ctx context.Context, ev target.Event) bool {
	bp, ok := r.state.Breakpoint(ev.Tag)
	if !ok {
		return true
	}
	location := r.location(ev.Location)
	resolver := r.inspector.Resolver(ctx, r.target, ev.Thread, 0, r.symbols)

	if bp.Condition != "" {
		pass, err := r.evaluateCondition(bp, resolver)
		if err != nil {
			r.stats.Counter("condition_errors").Inc(1)
			r.logger.Debugw("condition failed", "id", bp.ID, "condition", bp.Condition, "error", err)
			r.emit(ctx, entity.BreakpointConditionError, entity.ConditionErrorPayload{
				ID:        bp.ID,
				Condition: bp.Condition,
				Error:     err.Error(),
				Location:  location,
			})
			return true
		}
		if !pass {
			r.stats.Counter("condition_false").Inc(1)
			return true
		}
	}

	if bp.LogMessage != "" {
		return r.logpointHit(ctx, bp, ev, location, resolver)
	}

	frame := r.stoppedFrame(ctx, ev.Thread)
	hits, ok := r.state.RecordHit(bp.ID, location)
	if !ok {
		return true
	}
	r.state.MarkSuspended(ev.Thread, r.clock.Now(), location)
	r.stats.Counter("hits").Inc(1)
	r.emit(ctx, entity.BreakpointHit, entity.BreakpointHitPayload{
		ID:       bp.ID,
		Location: location,
		HitCount: hits,
		Frame:    frame,
	})
	return false
}

func (r *registry) evaluateCondition(bp model.Breakpoint, resolver condition.Resolver) (bool, error) {
	prog := bp.Compiled
	if prog == nil {
		var err error
		if prog, err = condition.Compile(bp.Condition); err != nil {
			return false, err
		}
		r.state.CacheCondition(bp.ID, prog)
	}
	return prog.Eval(resolver)
}

func (r *registry) logpointHit(ctx context.Context, bp model.Breakpoint, ev target.Event, location string, resolver condition.Resolver) bool {
	hits, ok := r.state.RecordHit(bp.ID, location)
	if !ok {
		return true
	}
	payload := entity.LogpointHitPayload{
		ID:        bp.ID,
		Message:   condition.Render(bp.LogMessage, resolver),
		HitCount:  hits,
		Location:  location,
		Timestamp: r.clock.Now(),
	}
	if name, err := r.target.ThreadName(ctx, ev.Thread); err == nil {
		payload.ThreadName = name
	}
	if bp.CaptureStack {
		stack, err := inspector.CaptureStack(ctx, r.target, ev.Thread, bp.StackMaxFrames, r.symbols)
		if err != nil {
			r.logger.Debugw("capturing logpoint stack failed", "id", bp.ID, "error", err)
		}
		payload.Stack = stack
	}
	r.stats.Counter("logpoint_hits").Inc(1)
	r.emit(ctx, entity.LogpointHit, payload)
	return true
}
