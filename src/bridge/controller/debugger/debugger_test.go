package debugger

import (
	"context"
	stderr "errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/factory"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier/notifiermock"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier/notifiertest"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/gateway/target/targettest"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/repository/session"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _mainClass = "com.example.Main"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeConnector struct {
	scheme string
	vm     *targettest.VM
	err    error
	calls  []string
}

func (f *fakeConnector) Scheme() string { return f.scheme }

func (f *fakeConnector) Connect(_ context.Context, address string) (target.Target, error) {
	f.calls = append(f.calls, address)
	if f.err != nil {
		return nil, f.err
	}
	return f.vm, nil
}

type fixture struct {
	ctrl     Controller
	sessions session.Repository
	events   *notifiertest.Recorder
	stats    tally.TestScope
}

func testConfig(t *testing.T, debugger map[string]interface{}) config.Provider {
	cfg, err := config.NewStaticProvider(map[string]interface{}{
		"debugger": debugger,
	})
	require.NoError(t, err)
	return cfg
}

func fastConfig() map[string]interface{} {
	return map[string]interface{}{
		"pollIntervalMs": 10,
		"joinTimeoutMs":  1000,
		"stepTimeoutMs":  2000,
	}
}

func newFixture(t *testing.T, connectors ...target.Connector) *fixture {
	mockCtrl := gomock.NewController(t)
	gateway := notifiermock.NewMockGateway(mockCtrl)
	f := &fixture{
		sessions: session.New(tally.NoopScope),
		events:   &notifiertest.Recorder{},
		stats:    tally.NewTestScope("testing", nil),
	}
	gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gateway.EXPECT().DeregisterClient(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gateway.EXPECT().SessionEmitter(gomock.Any()).Return(f.events).AnyTimes()

	lc := fxtest.NewLifecycle(t)
	c, err := New(Params{
		Config:     testConfig(t, fastConfig()),
		Lifecycle:  lc,
		Sessions:   f.sessions,
		Notifier:   gateway,
		Inspector:  inspector.NewWithConfig(inspector.DefaultConfig()),
		Connectors: connectors,
		Logger:     zap.NewNop().Sugar(),
		Stats:      f.stats,
	})
	require.NoError(t, err)
	f.ctrl = c

	lc.RequireStart()
	t.Cleanup(func() { lc.RequireStop() })
	return f
}

func (f *fixture) sessionContext(t *testing.T) context.Context {
	id, err := f.ctrl.InitSession(context.Background(), nil)
	require.NoError(t, err)
	return factory.SessionContext(id)
}

func (f *fixture) attach(t *testing.T, ctx context.Context, vm *targettest.VM) {
	_, err := f.ctrl.Attach(ctx, "test://vm", vm)
	require.NoError(t, err)
}

func (f *fixture) waitFor(t *testing.T, typ entity.NotificationType, count int) []interface{} {
	require.Eventually(t, func() bool {
		return len(f.events.OfType(typ)) >= count
	}, 2*time.Second, 5*time.Millisecond, "waiting for %s", typ)
	return f.events.OfType(typ)
}

func TestNewValidatesConfig(t *testing.T) {
	base := Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Sessions:  session.New(tally.NoopScope),
		Inspector: inspector.NewWithConfig(inspector.DefaultConfig()),
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NoopScope,
	}

	p := base
	p.Config = testConfig(t, map[string]interface{}{"stepTimeoutMs": -1})
	_, err := New(p)
	assert.Error(t, err)

	p = base
	p.Config = testConfig(t, fastConfig())
	p.Connectors = []target.Connector{&fakeConnector{scheme: "tcp"}, &fakeConnector{scheme: "tcp"}}
	_, err = New(p)
	assert.ErrorContains(t, err, "duplicate connector")
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	id := ctx.Value(entity.SessionContextKey).(uuid.UUID)

	s, err := f.sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, s.UUID)

	vm := targettest.New()
	f.attach(t, ctx, vm)

	require.NoError(t, f.ctrl.EndSession(ctx, id))
	assert.True(t, vm.Disposed())
	_, err = f.sessions.Get(ctx, id)
	_, notFound := errors.NotFoundUUID(err)
	assert.True(t, notFound)
}

func TestCommandsRequireAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)

	_, err := f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 1})
	assert.ErrorIs(t, err, errors.ErrNotAttached)
	_, err = f.ctrl.ListExceptionBreakpoints(ctx)
	assert.ErrorIs(t, err, errors.ErrNotAttached)
	_, err = f.ctrl.Threads(ctx)
	assert.True(t, errors.IsInvalidState(err))
	assert.ErrorIs(t, f.ctrl.Detach(ctx), errors.ErrNotAttached)

	_, err = f.ctrl.ListBreakpoints(context.Background())
	var noSession *errors.NoSessionFoundError
	assert.ErrorAs(t, err, &noSession)

	unknown := factory.SessionContext(factory.UUID())
	_, err = f.ctrl.Attach(unknown, "test://vm", targettest.New())
	_, notFound := errors.NotFoundUUID(err)
	assert.True(t, notFound)
}

func TestAttachAndDetach(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()

	result, err := f.ctrl.Attach(ctx, "test://vm", vm)
	require.NoError(t, err)
	assert.Equal(t, ctx.Value(entity.SessionContextKey), result.SessionID)
	assert.Equal(t, "test://vm", result.Address)

	_, err = f.ctrl.Attach(ctx, "test://other", targettest.New())
	assert.ErrorIs(t, err, errors.ErrAlreadyAttached)

	require.NoError(t, f.ctrl.Detach(ctx))
	assert.True(t, vm.Disposed())
	assert.Equal(t, 1, vm.ResumeAllCount())
	assert.ErrorIs(t, f.ctrl.Detach(ctx), errors.ErrNotAttached)

	counters := f.stats.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["testing.debugger.attaches+"].Value())
	assert.Equal(t, int64(1), counters["testing.debugger.detaches+"].Value())
}

func TestAttachAddress(t *testing.T) {
	vm := targettest.New()
	good := &fakeConnector{scheme: "fake", vm: vm}
	broken := &fakeConnector{scheme: "broken", err: stderr.New("connection refused")}
	f := newFixture(t, good, broken)
	ctx := f.sessionContext(t)

	tests := []struct {
		name    string
		address string
		check   func(error) bool
	}{
		{name: "empty", address: "", check: errors.IsInvalidParams},
		{name: "unknown scheme", address: "adb://emulator-5554", check: errors.IsInvalidParams},
		{name: "malformed", address: "fake://%zz", check: errors.IsInvalidParams},
		{name: "connect failure", address: "broken://host:5005", check: errors.IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ctrl.AttachAddress(ctx, entity.AttachRequest{Address: tt.address})
			assert.True(t, tt.check(err), "%v", err)
		})
	}

	result, err := f.ctrl.AttachAddress(ctx, entity.AttachRequest{Address: "fake://host:5005"})
	require.NoError(t, err)
	assert.Equal(t, "fake://host:5005", result.Address)
	assert.Equal(t, []string{"fake://host:5005"}, good.calls)

	_, err = f.ctrl.AttachAddress(ctx, entity.AttachRequest{Address: "fake://host:5005"})
	assert.ErrorIs(t, err, errors.ErrAlreadyAttached)
	assert.Len(t, good.calls, 1, "no connection is opened while attached")
}

// fieldReadFailure fails every field read of an otherwise working VM.
type fieldReadFailure struct {
	*targettest.VM
}

func (fieldReadFailure) FieldValue(context.Context, target.ObjectID, target.Field) (target.Value, error) {
	return target.Value{}, stderr.New("connection reset")
}

func TestInspectPathErrorKinds(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	vm.DefineLoadedClass(_mainClass, map[int]string{42: "run"})
	_, err := f.ctrl.Attach(ctx, "test://vm", fieldReadFailure{VM: vm})
	require.NoError(t, err)

	_, err = f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 42})
	require.NoError(t, err)
	th := vm.AddThread("main")
	user := vm.NewObject("com.example.User", target.Variable{Name: "name", Value: vm.NewString("ada")})
	require.True(t, vm.Hit(th, targettest.StackFrame{
		Class:  _mainClass,
		Method: "run",
		Line:   42,
		Locals: []target.Variable{{Name: "user", Value: user}},
	}))
	f.waitFor(t, entity.BreakpointHit, 1)

	tests := []struct {
		name    string
		req     entity.InspectRequest
		invalid bool
	}{
		{name: "unknown name", req: entity.InspectRequest{ThreadID: uint64(th), Path: "missing"}, invalid: true},
		{name: "frame out of range", req: entity.InspectRequest{ThreadID: uint64(th), Frame: 3, Path: "user"}, invalid: true},
		{name: "field read failure", req: entity.InspectRequest{ThreadID: uint64(th), Path: "user.name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ctrl.Inspect(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.IsInvalidParams(err), "%v", err)
			assert.Equal(t, !tt.invalid, errors.IsInternal(err), "%v", err)
		})
	}
}

func TestBreakpointInspectAndResume(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	vm.DefineLoadedClass(_mainClass, map[int]string{42: "run"})
	f.attach(t, ctx, vm)

	bp, err := f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 42})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSet, bp.Status)
	assert.Equal(t, "com.example.Main:42", bp.Location)

	list, err := f.ctrl.ListBreakpoints(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	th := vm.AddThread("main")
	user := vm.NewObject("com.example.User", target.Variable{Name: "name", Value: vm.NewString("ada")})
	require.True(t, vm.Hit(th, targettest.StackFrame{
		Class:  _mainClass,
		Method: "run",
		Line:   42,
		Locals: []target.Variable{
			{Name: "count", Value: target.Int(3)},
			{Name: "user", Value: user},
		},
	}))
	hits := f.waitFor(t, entity.BreakpointHit, 1)
	assert.Equal(t, bp.ID, hits[0].(entity.BreakpointHitPayload).ID)

	threads, err := f.ctrl.Threads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, uint64(th), threads[0].ThreadID)
	assert.Equal(t, "main", threads[0].Name)
	assert.Equal(t, "com.example.Main:42", threads[0].Location)

	frame, err := f.ctrl.Inspect(ctx, entity.InspectRequest{ThreadID: uint64(th)})
	require.NoError(t, err)
	require.Len(t, frame.Variables, 2)
	assert.Equal(t, "count", frame.Variables[0].Name)

	byPath, err := f.ctrl.Inspect(ctx, entity.InspectRequest{ThreadID: uint64(th), Path: "user"})
	require.NoError(t, err)
	require.Len(t, byPath.Variables, 1)
	handle := byPath.Variables[0].Handle
	require.NotEmpty(t, handle)

	byHandle, err := f.ctrl.Inspect(ctx, entity.InspectRequest{Handle: handle})
	require.NoError(t, err)
	require.Len(t, byHandle.Variables, 1)
	assert.Equal(t, "com.example.User", byHandle.Variables[0].Type)

	_, err = f.ctrl.Inspect(ctx, entity.InspectRequest{ThreadID: uint64(th), Path: "user..name"})
	assert.True(t, errors.IsInvalidParams(err), "%v", err)
	_, err = f.ctrl.Inspect(ctx, entity.InspectRequest{ThreadID: uint64(th), Path: "missing"})
	assert.True(t, errors.IsInvalidParams(err), "%v", err)

	eval, err := f.ctrl.Evaluate(ctx, entity.EvaluateRequest{ThreadID: uint64(th), Expression: "count > 5"})
	require.NoError(t, err)
	assert.Equal(t, entity.EvaluateResult{OK: true, Type: "boolean", Value: false}, eval)

	eval, err = f.ctrl.Evaluate(ctx, entity.EvaluateRequest{ThreadID: uint64(th), Expression: "count >"})
	require.NoError(t, err)
	assert.False(t, eval.OK)
	assert.NotEmpty(t, eval.Error)

	resumed, err := f.ctrl.Resume(ctx, entity.ResumeRequest{ThreadID: uint64Ptr(uint64(th))})
	require.NoError(t, err)
	assert.Equal(t, []uint64{uint64(th)}, resumed.Resumed)
	assert.False(t, vm.IsSuspended(th))

	_, err = f.ctrl.Inspect(ctx, entity.InspectRequest{Handle: handle})
	assert.True(t, errors.IsInvalidState(err), "handles expire on resume")
	_, err = f.ctrl.Resume(ctx, entity.ResumeRequest{ThreadID: uint64Ptr(uint64(th))})
	assert.True(t, errors.IsInvalidState(err))
	_, err = f.ctrl.Evaluate(ctx, entity.EvaluateRequest{ThreadID: uint64(th), Expression: "true"})
	assert.True(t, errors.IsInvalidState(err))

	require.NoError(t, f.ctrl.RemoveBreakpoint(ctx, bp.ID))
	assert.True(t, errors.IsInvalidState(f.ctrl.RemoveBreakpoint(ctx, bp.ID)))
}

func TestResumeAll(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	vm.DefineLoadedClass(_mainClass, map[int]string{7: "run"})
	f.attach(t, ctx, vm)

	_, err := f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 7})
	require.NoError(t, err)

	resumed, err := f.ctrl.Resume(ctx, entity.ResumeRequest{})
	require.NoError(t, err)
	assert.Empty(t, resumed.Resumed)

	first := vm.AddThread("first")
	second := vm.AddThread("second")
	require.True(t, vm.Hit(second, targettest.StackFrame{Class: _mainClass, Method: "run", Line: 7}))
	require.True(t, vm.Hit(first, targettest.StackFrame{Class: _mainClass, Method: "run", Line: 7}))
	f.waitFor(t, entity.BreakpointHit, 2)

	resumed, err = f.ctrl.Resume(ctx, entity.ResumeRequest{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{uint64(first), uint64(second)}, resumed.Resumed)

	threads, err := f.ctrl.Threads(ctx)
	require.NoError(t, err)
	assert.Empty(t, threads)
}

func TestResumeFailureKeepsThreadSuspended(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	vm.DefineLoadedClass(_mainClass, map[int]string{7: "run"})
	f.attach(t, ctx, vm)

	_, err := f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 7})
	require.NoError(t, err)
	th := vm.AddThread("main")
	require.True(t, vm.Hit(th, targettest.StackFrame{Class: _mainClass, Method: "run", Line: 7}))
	f.waitFor(t, entity.BreakpointHit, 1)

	vm.FailResume(stderr.New("transport closed"))
	_, err = f.ctrl.Resume(ctx, entity.ResumeRequest{ThreadID: uint64Ptr(uint64(th))})
	assert.True(t, errors.IsInternal(err), "%v", err)

	threads, err := f.ctrl.Threads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "com.example.Main:7", threads[0].Location)
}

func TestStepThroughController(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	vm.DefineLoadedClass(_mainClass, map[int]string{10: "run", 11: "run"})
	f.attach(t, ctx, vm)

	_, err := f.ctrl.SetBreakpoint(ctx, entity.SetBreakpointRequest{ClassPattern: _mainClass, Line: 10})
	require.NoError(t, err)
	th := vm.AddThread("main")
	require.True(t, vm.Hit(th, targettest.StackFrame{Class: _mainClass, Method: "run", Line: 10}))
	f.waitFor(t, entity.BreakpointHit, 1)

	_, err = f.ctrl.Step(ctx, entity.StepRequest{ThreadID: uint64(th), Kind: "sideways"})
	assert.True(t, errors.IsInvalidParams(err))
	_, err = f.ctrl.Step(ctx, entity.StepRequest{ThreadID: uint64(th), Kind: "over", TimeoutMs: intPtr(0)})
	assert.True(t, errors.IsInvalidParams(err))

	done := make(chan entity.StepResult, 1)
	go func() {
		result, err := f.ctrl.Step(ctx, entity.StepRequest{ThreadID: uint64(th), Kind: "over"})
		assert.NoError(t, err)
		done <- result
	}()
	require.Eventually(t, func() bool {
		return len(vm.ActiveWatches(target.WatchStep)) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.True(t, vm.CompleteStep(th, targettest.StackFrame{Class: _mainClass, Method: "run", Line: 11}))

	result := <-done
	assert.Equal(t, entity.StepCompleted, result.Status)
	require.NotNil(t, result.Frame)
	assert.Equal(t, "com.example.Main:11", result.Frame.Location)

	threads, err := f.ctrl.Threads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "com.example.Main:11", threads[0].Location)
}

func TestDisconnectAndReattach(t *testing.T) {
	f := newFixture(t)
	ctx := f.sessionContext(t)
	vm := targettest.New()
	f.attach(t, ctx, vm)

	vm.Disconnect("adb: device offline")
	disconnects := f.waitFor(t, entity.VMDisconnected, 1)
	assert.Equal(t, entity.DeviceDisconnected, disconnects[0].(entity.VMDisconnectedPayload).Reason)

	require.Eventually(t, func() bool {
		_, err := f.ctrl.ListBreakpoints(ctx)
		return errors.IsDisconnected(err)
	}, 2*time.Second, 5*time.Millisecond)

	next := targettest.New()
	f.attach(t, ctx, next)
	assert.True(t, vm.Disposed(), "the stale target is released")
	assert.Zero(t, vm.ResumeAllCount(), "a lost target is not resumed")

	list, err := f.ctrl.ListBreakpoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStopDetachesEverySession(t *testing.T) {
	f := newFixture(t)
	first := targettest.New()
	second := targettest.New()
	f.attach(t, f.sessionContext(t), first)
	f.attach(t, f.sessionContext(t), second)

	f.ctrl.(*controller).detachAll(context.Background())
	assert.True(t, first.Disposed())
	assert.True(t, second.Disposed())
}

func uint64Ptr(v uint64) *uint64 { return &v }

func intPtr(v int) *int { return &v }
