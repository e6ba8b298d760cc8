// Package debugstate holds the shared state of one attached target: the breakpoint registries,
// the active step, client-suspended threads, inspection handles and disconnect status.
//
// Every method takes the state lock for its own duration only, so callers never hold it across
// calls into the target.
package debugstate

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/model"
	"go.uber.org/atomic"
)

// Suspension records when a thread was suspended for the client and where.
type Suspension struct {
	Since    time.Time
	Location string
}

// Disconnect records why the target went away.
type Disconnect struct {
	Reason entity.DisconnectReason
	Detail string
}

// State is the state container of one attached target.
type State struct {
	ids *atomic.Int64

	mu                   sync.Mutex
	breakpoints          map[int64]*model.Breakpoint
	exceptionBreakpoints map[int64]*model.ExceptionBreakpoint
	activeStep           *model.ActiveStep
	suspended            map[target.ThreadID]Suspension
	handles              map[string]target.Value
	handleByObject       map[target.ObjectID]string
	handleSeq            int64
	disconnect           *Disconnect
}

// New creates an empty State.
func New() *State {
	return &State{
		ids:                  atomic.NewInt64(0),
		breakpoints:          make(map[int64]*model.Breakpoint),
		exceptionBreakpoints: make(map[int64]*model.ExceptionBreakpoint),
		suspended:            make(map[target.ThreadID]Suspension),
		handles:              make(map[string]target.Value),
		handleByObject:       make(map[target.ObjectID]string),
	}
}

// NextID returns the next breakpoint id. Line and exception breakpoints share the sequence.
func (s *State) NextID() int64 {
	return s.ids.Inc()
}

// PutBreakpoint stores a breakpoint record, replacing any record with the same id.
func (s *State) PutBreakpoint(bp *model.Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakpoints[bp.ID] = bp
}

// Breakpoint returns a copy of a breakpoint record.
func (s *State) Breakpoint(id int64) (model.Breakpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.breakpoints[id]
	if !ok {
		return model.Breakpoint{}, false
	}
	return *bp, true
}

// Breakpoints returns copies of every breakpoint record ordered by id.
func (s *State) Breakpoints() []model.Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Breakpoint, 0, len(s.breakpoints))
	for _, bp := range s.breakpoints {
		out = append(out, *bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PendingBreakpoints returns copies of the pending breakpoint records ordered by id.
func (s *State) PendingBreakpoints() []model.Breakpoint {
	var out []model.Breakpoint
	for _, bp := range s.Breakpoints() {
		if bp.Status == entity.StatusPending {
			out = append(out, bp)
		}
	}
	return out
}

// RemoveBreakpoint deletes a breakpoint record and returns it.
func (s *State) RemoveBreakpoint(id int64) (model.Breakpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.breakpoints[id]
	if !ok {
		return model.Breakpoint{}, false
	}
	delete(s.breakpoints, id)
	return *bp, true
}

// ResolveBreakpoint moves a pending breakpoint to set. It fails when the breakpoint is gone or
// already set, which makes resolution happen at most once. On success the load watch that should
// be cleared is returned.
func (s *State) ResolveBreakpoint(id int64, location string, lineWatch target.Watch) (*target.Watch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.breakpoints[id]
	if !ok || bp.Status != entity.StatusPending {
		return nil, false
	}
	loadWatch := bp.LoadWatch
	bp.Status = entity.StatusSet
	bp.Reason = ""
	bp.Location = location
	bp.LineWatch = &lineWatch
	bp.LoadWatch = nil
	return loadWatch, true
}

// AttachBreakpointLoadWatch records the class-load watch of a pending breakpoint. It fails when the
// breakpoint is gone or no longer pending, in which case the caller still owns the watch.
func (s *State) AttachBreakpointLoadWatch(id int64, loadWatch target.Watch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.breakpoints[id]
	if !ok || bp.Status != entity.StatusPending {
		return false
	}
	bp.LoadWatch = &loadWatch
	return true
}

// RecordHit increments a breakpoint's hit count, refreshes its location and returns the new count.
func (s *State) RecordHit(id int64, location string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.breakpoints[id]
	if !ok {
		return 0, false
	}
	bp.HitCount++
	if location != "" {
		bp.Location = location
	}
	return bp.HitCount, true
}

// CacheCondition stores a lazily compiled condition on a breakpoint.
func (s *State) CacheCondition(id int64, prog *condition.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.breakpoints[id]; ok && stored.Compiled == nil {
		stored.Compiled = prog
	}
}

// TakeBreakpoints empties the breakpoint registry and returns what it held.
func (s *State) TakeBreakpoints() []model.Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Breakpoint, 0, len(s.breakpoints))
	for _, bp := range s.breakpoints {
		out = append(out, *bp)
	}
	s.breakpoints = make(map[int64]*model.Breakpoint)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PutExceptionBreakpoint stores an exception breakpoint record.
func (s *State) PutExceptionBreakpoint(bp *model.ExceptionBreakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exceptionBreakpoints[bp.ID] = bp
}

// ExceptionBreakpoint returns a copy of an exception breakpoint record.
func (s *State) ExceptionBreakpoint(id int64) (model.ExceptionBreakpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.exceptionBreakpoints[id]
	if !ok {
		return model.ExceptionBreakpoint{}, false
	}
	return *bp, true
}

// ExceptionBreakpoints returns copies of every exception breakpoint record ordered by id.
func (s *State) ExceptionBreakpoints() []model.ExceptionBreakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ExceptionBreakpoint, 0, len(s.exceptionBreakpoints))
	for _, bp := range s.exceptionBreakpoints {
		out = append(out, *bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PendingExceptionBreakpoints returns copies of the pending exception breakpoint records.
func (s *State) PendingExceptionBreakpoints() []model.ExceptionBreakpoint {
	var out []model.ExceptionBreakpoint
	for _, bp := range s.ExceptionBreakpoints() {
		if bp.Status == entity.StatusPending {
			out = append(out, bp)
		}
	}
	return out
}

// RemoveExceptionBreakpoint deletes an exception breakpoint record and returns it.
func (s *State) RemoveExceptionBreakpoint(id int64) (model.ExceptionBreakpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.exceptionBreakpoints[id]
	if !ok {
		return model.ExceptionBreakpoint{}, false
	}
	delete(s.exceptionBreakpoints, id)
	return *bp, true
}

// ResolveExceptionBreakpoint moves a pending exception breakpoint to set, at most once.
func (s *State) ResolveExceptionBreakpoint(id int64, className string, exceptionWatch target.Watch) (*target.Watch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.exceptionBreakpoints[id]
	if !ok || bp.Status != entity.StatusPending {
		return nil, false
	}
	loadWatch := bp.LoadWatch
	bp.Status = entity.StatusSet
	bp.Reason = ""
	bp.ClassName = className
	bp.ExceptionWatch = &exceptionWatch
	bp.LoadWatch = nil
	return loadWatch, true
}

// AttachExceptionLoadWatch records the class-load watch of a pending exception breakpoint, like
// AttachBreakpointLoadWatch.
func (s *State) AttachExceptionLoadWatch(id int64, loadWatch target.Watch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp, ok := s.exceptionBreakpoints[id]
	if !ok || bp.Status != entity.StatusPending {
		return false
	}
	bp.LoadWatch = &loadWatch
	return true
}

// TakeExceptionBreakpoints empties the exception breakpoint registry and returns what it held.
func (s *State) TakeExceptionBreakpoints() []model.ExceptionBreakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ExceptionBreakpoint, 0, len(s.exceptionBreakpoints))
	for _, bp := range s.exceptionBreakpoints {
		out = append(out, *bp)
	}
	s.exceptionBreakpoints = make(map[int64]*model.ExceptionBreakpoint)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BeginStep installs step as the active step. It fails if another step is active.
func (s *State) BeginStep(step *model.ActiveStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeStep != nil {
		return errors.InvalidState("a step is already in progress on thread %d", s.activeStep.Thread)
	}
	s.activeStep = step
	return nil
}

// ActiveStep returns the active step, if any.
func (s *State) ActiveStep() *model.ActiveStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeStep
}

// TakeStep removes and returns the active step if it belongs to thread.
func (s *State) TakeStep(thread target.ThreadID) *model.ActiveStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeStep == nil || s.activeStep.Thread != thread {
		return nil
	}
	step := s.activeStep
	s.activeStep = nil
	return step
}

// TakeStepIf removes the active step only if it is exactly step.
func (s *State) TakeStepIf(step *model.ActiveStep) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeStep != step {
		return false
	}
	s.activeStep = nil
	return true
}

// ClearStep removes and returns the active step, if any.
func (s *State) ClearStep() *model.ActiveStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := s.activeStep
	s.activeStep = nil
	return step
}

// MarkSuspended records that thread is held for the client.
func (s *State) MarkSuspended(thread target.ThreadID, at time.Time, location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended[thread] = Suspension{Since: at, Location: location}
}

// Unsuspend forgets a client-suspended thread and reports whether it was suspended.
func (s *State) Unsuspend(thread target.ThreadID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.suspended[thread]
	delete(s.suspended, thread)
	return ok
}

// IsSuspended reports whether thread is held for the client.
func (s *State) IsSuspended(thread target.ThreadID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.suspended[thread]
	return ok
}

// SuspendedThreads returns a copy of the client-suspended threads.
func (s *State) SuspendedThreads() map[target.ThreadID]Suspension {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[target.ThreadID]Suspension, len(s.suspended))
	for id, sus := range s.suspended {
		out[id] = sus
	}
	return out
}

// ClearSuspended forgets every client-suspended thread and returns their ids in ascending order.
func (s *State) ClearSuspended() []target.ThreadID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]target.ThreadID, 0, len(s.suspended))
	for id := range s.suspended {
		out = append(out, id)
	}
	s.suspended = make(map[target.ThreadID]Suspension)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AssignHandle returns a stable opaque handle for a reference value. Non-reference values get no handle.
func (s *State) AssignHandle(v target.Value) string {
	if !v.IsReference() || v.Object == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handleByObject[v.Object]; ok {
		return h
	}
	s.handleSeq++
	h := "h" + strconv.FormatInt(s.handleSeq, 10)
	s.handles[h] = v
	s.handleByObject[v.Object] = h
	return h
}

// Handle looks up a handle issued since the last invalidation.
func (s *State) Handle(h string) (target.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.handles[h]
	return v, ok
}

// InvalidateHandles drops every issued handle. Handle numbers are never reused.
func (s *State) InvalidateHandles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = make(map[string]target.Value)
	s.handleByObject = make(map[target.ObjectID]string)
}

// MarkDisconnected records the disconnect. Only the first call succeeds.
func (s *State) MarkDisconnected(reason entity.DisconnectReason, detail string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disconnect != nil {
		return false
	}
	s.disconnect = &Disconnect{Reason: reason, Detail: detail}
	return true
}

// Disconnected returns the disconnect record, if the target went away.
func (s *State) Disconnected() (Disconnect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disconnect == nil {
		return Disconnect{}, false
	}
	return *s.disconnect, true
}
