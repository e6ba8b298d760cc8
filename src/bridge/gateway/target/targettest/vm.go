// Package targettest provides an in-memory target.Target for tests.
package targettest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/uber/debug-bridge/src/bridge/gateway/target"
)

const _eventBuffer = 256

// StackFrame describes one frame placed on a thread when it stops.
type StackFrame struct {
	Class  string
	Method string
	Line   int
	Locals []target.Variable
	This   target.Value
}

type class struct {
	ref    target.ClassRef
	lines  map[int]string
	fields []target.Field
	static map[string]target.Value
	loaded bool
}

type frame struct {
	loc    target.Location
	locals []target.Variable
	this   target.Value
}

type thread struct {
	id        target.ThreadID
	name      string
	suspended bool
	frames    []frame
}

type object struct {
	class  target.ClassRef
	fields map[string]target.Value
	array  []target.Value
	str    string
}

type watch struct {
	handle   target.Watch
	policy   target.SuspendPolicy
	tag      int64
	loc      target.Location
	pattern  string
	exClass  *target.ClassRef
	caught   bool
	uncaught bool
	thread   target.ThreadID
	stepKind target.StepKind
}

// VM is a scriptable fake target. Tests drive it with Hit, Throw, LoadClass and friends,
// and the code under test observes it through the target.Target interface.
type VM struct {
	mu sync.Mutex

	seq      int64
	classes  map[string]*class
	loadSeq  []*class
	threads  map[target.ThreadID]*thread
	objects  map[target.ObjectID]*object
	watches  map[int64]*watch
	events   chan *target.EventSet
	pending  []error
	disposed bool

	clearErr  error
	resumeErr error

	resumedSets    []int64
	resumedThreads []target.ThreadID
	resumeAll      int
	cleared        []target.Watch
}

var _ target.Target = (*VM)(nil)

// New creates an empty VM.
func New() *VM {
	return &VM{
		classes: make(map[string]*class),
		threads: make(map[target.ThreadID]*thread),
		objects: make(map[target.ObjectID]*object),
		watches: make(map[int64]*watch),
		events:  make(chan *target.EventSet, _eventBuffer),
	}
}

func (vm *VM) nextID() int64 {
	vm.seq++
	return vm.seq
}

// DefineClass declares a class that is not loaded yet. lines maps executable source lines to method names.
func (vm *VM) DefineClass(name string, lines map[int]string) target.ClassRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.defineLocked(name, lines).ref
}

// DefineLoadedClass declares a class that is already loaded without producing class-prepare events.
func (vm *VM) DefineLoadedClass(name string, lines map[int]string) target.ClassRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := vm.defineLocked(name, lines)
	vm.markLoadedLocked(c)
	return c.ref
}

func (vm *VM) defineLocked(name string, lines map[int]string) *class {
	if c, ok := vm.classes[name]; ok {
		for line, method := range lines {
			c.lines[line] = method
		}
		return c
	}
	if lines == nil {
		lines = map[int]string{}
	}
	c := &class{
		ref:    target.ClassRef{ID: target.ClassID(vm.nextID()), Name: name},
		lines:  lines,
		static: make(map[string]target.Value),
	}
	vm.classes[name] = c
	return c
}

func (vm *VM) markLoadedLocked(c *class) {
	if c.loaded {
		return
	}
	c.loaded = true
	vm.loadSeq = append(vm.loadSeq, c)
}

// LoadClass loads a defined class and reports it to matching class-load watches. It reports whether an event set was queued.
func (vm *VM) LoadClass(name string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	c := vm.defineLocked(name, nil)
	if c.loaded {
		return false
	}
	vm.markLoadedLocked(c)

	var events []target.Event
	policy := target.SuspendNone
	for _, w := range vm.sortedWatchesLocked(target.WatchClassLoad) {
		if ok, _ := path.Match(w.pattern, name); !ok {
			continue
		}
		events = append(events, target.Event{
			Kind:  target.EventClassPrepare,
			Watch: w.handle,
			Tag:   w.tag,
			Class: c.ref,
		})
		if w.policy > policy {
			policy = w.policy
		}
	}
	return vm.enqueueLocked(policy, events)
}

// AddThread creates a running thread.
func (vm *VM) AddThread(name string) target.ThreadID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := target.ThreadID(vm.nextID())
	vm.threads[id] = &thread{id: id, name: name}
	return id
}

// Suspend parks a thread on the given stack without producing an event.
func (vm *VM) Suspend(id target.ThreadID, stack ...StackFrame) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t := vm.threads[id]
	t.frames = vm.framesLocked(stack)
	t.suspended = true
}

// AddStaticField declares a static field on a class.
func (vm *VM) AddStaticField(className, name string, v target.Value) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := vm.defineLocked(className, nil)
	vm.markLoadedLocked(c)
	c.fields = append(c.fields, target.Field{ID: uint64(vm.nextID()), Name: name, Static: true})
	c.static[name] = v
}

// NewObject allocates an object. Declared fields are added to the class in order of first appearance.
func (vm *VM) NewObject(className string, fields ...target.Variable) target.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := vm.defineLocked(className, nil)
	vm.markLoadedLocked(c)

	obj := &object{class: c.ref, fields: make(map[string]target.Value)}
	for _, f := range fields {
		vm.declareFieldLocked(c, f.Name)
		obj.fields[f.Name] = f.Value
	}
	id := target.ObjectID(vm.nextID())
	vm.objects[id] = obj
	return target.ObjectRef(id)
}

func (vm *VM) declareFieldLocked(c *class, name string) {
	for _, f := range c.fields {
		if f.Name == name {
			return
		}
	}
	c.fields = append(c.fields, target.Field{ID: uint64(vm.nextID()), Name: name})
}

// SetField assigns a field of an existing object.
func (vm *VM) SetField(obj target.Value, name string, v target.Value) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o := vm.objects[obj.Object]
	vm.declareFieldLocked(vm.classes[o.class.Name], name)
	o.fields[name] = v
}

// NewString allocates a string object.
func (vm *VM) NewString(s string) target.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := vm.defineLocked("java.lang.String", nil)
	vm.markLoadedLocked(c)
	id := target.ObjectID(vm.nextID())
	vm.objects[id] = &object{class: c.ref, str: s}
	return target.StringRef(id)
}

// NewArray allocates an array of the given element type.
func (vm *VM) NewArray(elementClass string, values ...target.Value) target.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := vm.defineLocked(elementClass+"[]", nil)
	vm.markLoadedLocked(c)
	id := target.ObjectID(vm.nextID())
	vm.objects[id] = &object{class: c.ref, array: append([]target.Value{}, values...)}
	return target.ArrayRef(id)
}

// Hit moves a thread onto stack and fires matching line watches on its top frame. It reports whether an event set was queued.
func (vm *VM) Hit(id target.ThreadID, stack ...StackFrame) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	frames := vm.framesLocked(stack)
	top := frames[0].loc

	var events []target.Event
	policy := target.SuspendNone
	for _, w := range vm.sortedWatchesLocked(target.WatchLine) {
		if w.loc.Class.ID != top.Class.ID || w.loc.Line != top.Line {
			continue
		}
		events = append(events, target.Event{
			Kind:     target.EventBreakpoint,
			Watch:    w.handle,
			Tag:      w.tag,
			Thread:   id,
			Location: top,
		})
		if w.policy > policy {
			policy = w.policy
		}
	}
	if len(events) == 0 {
		return false
	}
	vm.stopLocked(id, frames, policy)
	return vm.enqueueLocked(policy, events)
}

// Throw raises an exception object on a thread and fires matching exception watches.
func (vm *VM) Throw(id target.ThreadID, exception target.Value, caught bool, stack ...StackFrame) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	frames := vm.framesLocked(stack)
	exClass := vm.objects[exception.Object].class

	info := &target.ExceptionInfo{Object: exception.Object, Class: exClass}
	if caught {
		catch := frames[len(frames)-1].loc
		info.Catch = &catch
	}

	var events []target.Event
	policy := target.SuspendNone
	for _, w := range vm.sortedWatchesLocked(target.WatchException) {
		if w.exClass != nil && w.exClass.ID != exClass.ID {
			continue
		}
		if (caught && !w.caught) || (!caught && !w.uncaught) {
			continue
		}
		events = append(events, target.Event{
			Kind:      target.EventException,
			Watch:     w.handle,
			Tag:       w.tag,
			Thread:    id,
			Location:  frames[0].loc,
			Exception: info,
		})
		if w.policy > policy {
			policy = w.policy
		}
	}
	if len(events) == 0 {
		return false
	}
	vm.stopLocked(id, frames, policy)
	return vm.enqueueLocked(policy, events)
}

// CompleteStep delivers the step event for a thread that has a step watch installed.
func (vm *VM) CompleteStep(id target.ThreadID, stack ...StackFrame) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	frames := vm.framesLocked(stack)
	var events []target.Event
	policy := target.SuspendNone
	for _, w := range vm.sortedWatchesLocked(target.WatchStep) {
		if w.thread != id {
			continue
		}
		events = append(events, target.Event{
			Kind:     target.EventStep,
			Watch:    w.handle,
			Tag:      w.tag,
			Thread:   id,
			Location: frames[0].loc,
		})
		if w.policy > policy {
			policy = w.policy
		}
	}
	if len(events) == 0 {
		return false
	}
	vm.stopLocked(id, frames, policy)
	return vm.enqueueLocked(policy, events)
}

// Emit queues a raw event set.
func (vm *VM) Emit(policy target.SuspendPolicy, events ...target.Event) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.enqueueLocked(policy, events)
}

// Disconnect queues a disconnect event carrying detail.
func (vm *VM) Disconnect(detail string) {
	vm.Emit(target.SuspendNone, target.Event{Kind: target.EventVMDisconnect, Detail: detail})
}

// FailNextEvent makes the next NextEventSet call return err.
func (vm *VM) FailNextEvent(err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pending = append(vm.pending, err)
}

// FailClearWatch makes every ClearWatch call return err.
func (vm *VM) FailClearWatch(err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.clearErr = err
}

// FailResume makes every resume call return err.
func (vm *VM) FailResume(err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.resumeErr = err
}

func (vm *VM) framesLocked(stack []StackFrame) []frame {
	frames := make([]frame, 0, len(stack))
	for _, sf := range stack {
		c := vm.defineLocked(sf.Class, nil)
		vm.markLoadedLocked(c)
		frames = append(frames, frame{
			loc: target.Location{
				Class:  c.ref,
				Method: sf.Method,
				Line:   sf.Line,
				Index:  uint64(sf.Line) * 10,
			},
			locals: sf.Locals,
			this:   sf.This,
		})
	}
	return frames
}

func (vm *VM) stopLocked(id target.ThreadID, frames []frame, policy target.SuspendPolicy) {
	t := vm.threads[id]
	t.frames = frames
	switch policy {
	case target.SuspendEventThread:
		t.suspended = true
	case target.SuspendAll:
		for _, other := range vm.threads {
			other.suspended = true
		}
	}
}

func (vm *VM) enqueueLocked(policy target.SuspendPolicy, events []target.Event) bool {
	if len(events) == 0 {
		return false
	}
	vm.events <- &target.EventSet{ID: vm.nextID(), Policy: policy, Events: events}
	return true
}

func (vm *VM) sortedWatchesLocked(kind target.WatchKind) []*watch {
	var out []*watch
	for id := int64(1); id <= vm.seq; id++ {
		if w, ok := vm.watches[id]; ok && w.handle.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// ActiveWatches returns the installed watches of a kind in install order.
func (vm *VM) ActiveWatches(kind target.WatchKind) []target.Watch {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	var out []target.Watch
	for _, w := range vm.sortedWatchesLocked(kind) {
		out = append(out, w.handle)
	}
	return out
}

// WatchPolicy returns the suspend policy a watch was installed with.
func (vm *VM) WatchPolicy(w target.Watch) (target.SuspendPolicy, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	installed, ok := vm.watches[w.ID]
	if !ok {
		return 0, false
	}
	return installed.policy, true
}

// ClearedWatches returns every watch cleared so far.
func (vm *VM) ClearedWatches() []target.Watch {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]target.Watch(nil), vm.cleared...)
}

// ResumedSets returns the ids of resumed event sets.
func (vm *VM) ResumedSets() []int64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]int64(nil), vm.resumedSets...)
}

// ResumedThreads returns the threads resumed individually.
func (vm *VM) ResumedThreads() []target.ThreadID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]target.ThreadID(nil), vm.resumedThreads...)
}

// ResumeAllCount returns how many times ResumeAll was called.
func (vm *VM) ResumeAllCount() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.resumeAll
}

// IsSuspended reports whether a thread is suspended in the VM.
func (vm *VM) IsSuspended(id target.ThreadID) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t, ok := vm.threads[id]
	return ok && t.suspended
}

// Disposed reports whether Dispose was called.
func (vm *VM) Disposed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.disposed
}

func (vm *VM) checkLocked() error {
	if vm.disposed {
		return target.ErrDisposed
	}
	return nil
}

// ClassesByName implements target.Target.
func (vm *VM) ClassesByName(_ context.Context, name string) ([]target.ClassRef, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	if c, ok := vm.classes[name]; ok && c.loaded {
		return []target.ClassRef{c.ref}, nil
	}
	return nil, nil
}

// LoadedClasses implements target.Target.
func (vm *VM) LoadedClasses(_ context.Context) ([]target.ClassRef, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	out := make([]target.ClassRef, 0, len(vm.loadSeq))
	for _, c := range vm.loadSeq {
		out = append(out, c.ref)
	}
	return out, nil
}

// LineLocations implements target.Target.
func (vm *VM) LineLocations(_ context.Context, ref target.ClassRef, line int) ([]target.Location, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	c, ok := vm.classes[ref.Name]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", ref.Name)
	}
	method, ok := c.lines[line]
	if !ok {
		return nil, nil
	}
	return []target.Location{{Class: c.ref, Method: method, Line: line, Index: uint64(line) * 10}}, nil
}

func (vm *VM) addWatchLocked(w *watch, kind target.WatchKind) (target.Watch, error) {
	if err := vm.checkLocked(); err != nil {
		return target.Watch{}, err
	}
	w.handle = target.Watch{Kind: kind, ID: vm.nextID()}
	vm.watches[w.handle.ID] = w
	return w.handle, nil
}

// SetLineWatch implements target.Target.
func (vm *VM) SetLineWatch(_ context.Context, loc target.Location, policy target.SuspendPolicy, tag int64) (target.Watch, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.addWatchLocked(&watch{loc: loc, policy: policy, tag: tag}, target.WatchLine)
}

// SetClassLoadWatch implements target.Target.
func (vm *VM) SetClassLoadWatch(_ context.Context, pattern string, policy target.SuspendPolicy, tag int64) (target.Watch, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.addWatchLocked(&watch{pattern: pattern, policy: policy, tag: tag}, target.WatchClassLoad)
}

// SetExceptionWatch implements target.Target.
func (vm *VM) SetExceptionWatch(_ context.Context, class *target.ClassRef, caught, uncaught bool, policy target.SuspendPolicy, tag int64) (target.Watch, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.addWatchLocked(&watch{exClass: class, caught: caught, uncaught: uncaught, policy: policy, tag: tag}, target.WatchException)
}

// SetStepWatch implements target.Target.
func (vm *VM) SetStepWatch(_ context.Context, thread target.ThreadID, kind target.StepKind, policy target.SuspendPolicy, tag int64) (target.Watch, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if _, ok := vm.threads[thread]; !ok {
		return target.Watch{}, fmt.Errorf("unknown thread %d", thread)
	}
	return vm.addWatchLocked(&watch{thread: thread, stepKind: kind, policy: policy, tag: tag}, target.WatchStep)
}

// ClearWatch implements target.Target.
func (vm *VM) ClearWatch(_ context.Context, w target.Watch) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return err
	}
	if vm.clearErr != nil {
		return vm.clearErr
	}
	if _, ok := vm.watches[w.ID]; !ok {
		return target.ErrUnknownWatch
	}
	delete(vm.watches, w.ID)
	vm.cleared = append(vm.cleared, w)
	return nil
}

// NextEventSet implements target.Target.
func (vm *VM) NextEventSet(ctx context.Context, timeout time.Duration) (*target.EventSet, error) {
	vm.mu.Lock()
	if err := vm.checkLocked(); err != nil {
		vm.mu.Unlock()
		return nil, err
	}
	if len(vm.pending) > 0 {
		err := vm.pending[0]
		vm.pending = vm.pending[1:]
		vm.mu.Unlock()
		return nil, err
	}
	vm.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case set := <-vm.events:
		return set, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ResumeSet implements target.Target.
func (vm *VM) ResumeSet(_ context.Context, set *target.EventSet) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return err
	}
	if vm.resumeErr != nil {
		return vm.resumeErr
	}
	vm.resumedSets = append(vm.resumedSets, set.ID)
	switch set.Policy {
	case target.SuspendEventThread:
		for _, ev := range set.Events {
			if t, ok := vm.threads[ev.Thread]; ok {
				t.suspended = false
			}
		}
	case target.SuspendAll:
		for _, t := range vm.threads {
			t.suspended = false
		}
	}
	return nil
}

// ResumeThread implements target.Target.
func (vm *VM) ResumeThread(_ context.Context, id target.ThreadID) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return err
	}
	if vm.resumeErr != nil {
		return vm.resumeErr
	}
	t, ok := vm.threads[id]
	if !ok {
		return fmt.Errorf("unknown thread %d", id)
	}
	t.suspended = false
	vm.resumedThreads = append(vm.resumedThreads, id)
	return nil
}

// ResumeAll implements target.Target.
func (vm *VM) ResumeAll(_ context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return err
	}
	if vm.resumeErr != nil {
		return vm.resumeErr
	}
	for _, t := range vm.threads {
		t.suspended = false
	}
	vm.resumeAll++
	return nil
}

// ThreadName implements target.Target.
func (vm *VM) ThreadName(_ context.Context, id target.ThreadID) (string, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return "", err
	}
	t, ok := vm.threads[id]
	if !ok {
		return "", fmt.Errorf("unknown thread %d", id)
	}
	return t.name, nil
}

func (vm *VM) suspendedThreadLocked(id target.ThreadID) (*thread, error) {
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	t, ok := vm.threads[id]
	if !ok {
		return nil, fmt.Errorf("unknown thread %d", id)
	}
	if !t.suspended {
		return nil, target.ErrThreadNotSuspended
	}
	return t, nil
}

// Frames implements target.Target.
func (vm *VM) Frames(_ context.Context, id target.ThreadID, start, count int) ([]target.Frame, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t, err := vm.suspendedThreadLocked(id)
	if err != nil {
		return nil, err
	}
	if start < 0 || start > len(t.frames) {
		return nil, fmt.Errorf("invalid frame start %d", start)
	}
	end := len(t.frames)
	if count >= 0 && start+count < end {
		end = start + count
	}
	out := make([]target.Frame, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, target.Frame{Index: i, Location: t.frames[i].loc})
	}
	return out, nil
}

func (vm *VM) frameLocked(id target.ThreadID, index int) (frame, error) {
	t, err := vm.suspendedThreadLocked(id)
	if err != nil {
		return frame{}, err
	}
	if index < 0 || index >= len(t.frames) {
		return frame{}, fmt.Errorf("invalid frame index %d", index)
	}
	return t.frames[index], nil
}

// Locals implements target.Target.
func (vm *VM) Locals(_ context.Context, id target.ThreadID, index int) ([]target.Variable, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	f, err := vm.frameLocked(id, index)
	if err != nil {
		return nil, err
	}
	return append([]target.Variable(nil), f.locals...), nil
}

// This implements target.Target.
func (vm *VM) This(_ context.Context, id target.ThreadID, index int) (target.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	f, err := vm.frameLocked(id, index)
	if err != nil {
		return target.Value{}, err
	}
	return f.this, nil
}

func (vm *VM) objectLocked(id target.ObjectID) (*object, error) {
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	o, ok := vm.objects[id]
	if !ok {
		return nil, fmt.Errorf("unknown object %d", id)
	}
	return o, nil
}

// ObjectClass implements target.Target.
func (vm *VM) ObjectClass(_ context.Context, id target.ObjectID) (target.ClassRef, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.objectLocked(id)
	if err != nil {
		return target.ClassRef{}, err
	}
	return o.class, nil
}

// Fields implements target.Target.
func (vm *VM) Fields(_ context.Context, ref target.ClassRef) ([]target.Field, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.checkLocked(); err != nil {
		return nil, err
	}
	c, ok := vm.classes[ref.Name]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", ref.Name)
	}
	return append([]target.Field(nil), c.fields...), nil
}

// FieldValue implements target.Target.
func (vm *VM) FieldValue(_ context.Context, id target.ObjectID, field target.Field) (target.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.objectLocked(id)
	if err != nil {
		return target.Value{}, err
	}
	if field.Static {
		return vm.classes[o.class.Name].static[field.Name], nil
	}
	v, ok := o.fields[field.Name]
	if !ok {
		return target.Null(), nil
	}
	return v, nil
}

// ArrayLength implements target.Target.
func (vm *VM) ArrayLength(_ context.Context, id target.ObjectID) (int, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.objectLocked(id)
	if err != nil {
		return 0, err
	}
	return len(o.array), nil
}

// ArrayValues implements target.Target.
func (vm *VM) ArrayValues(_ context.Context, id target.ObjectID, first, count int) ([]target.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.objectLocked(id)
	if err != nil {
		return nil, err
	}
	if first < 0 || count < 0 || first+count > len(o.array) {
		return nil, errors.New("array index out of bounds")
	}
	return append([]target.Value(nil), o.array[first:first+count]...), nil
}

// StringValue implements target.Target.
func (vm *VM) StringValue(_ context.Context, id target.ObjectID) (string, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.objectLocked(id)
	if err != nil {
		return "", err
	}
	return o.str, nil
}

// Dispose implements target.Target.
func (vm *VM) Dispose(_ context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.disposed = true
	return nil
}
