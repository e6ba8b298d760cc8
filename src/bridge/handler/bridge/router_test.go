package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/controller/debugger/debuggermock"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/mock/gomock"
)

type mockControllerRecorder = debuggermock.MockControllerMockRecorder

func TestHandleReq(t *testing.T) {
	threadID := uint64(7)

	tests := []struct {
		name   string
		method string
		params interface{}
		expect func(c *mockControllerRecorder)
	}{
		{
			name:   "attach",
			method: MethodAttach,
			params: entity.AttachRequest{Address: "vm://local"},
			expect: func(c *mockControllerRecorder) {
				c.AttachAddress(gomock.Any(), entity.AttachRequest{Address: "vm://local"}).Return(entity.AttachResult{}, nil)
			},
		},
		{
			name:   "detach",
			method: MethodDetach,
			expect: func(c *mockControllerRecorder) { c.Detach(gomock.Any()).Return(nil) },
		},
		{
			name:   "set breakpoint",
			method: MethodSetBreakpoint,
			params: entity.SetBreakpointRequest{ClassPattern: "com.example.Main", Line: 12},
			expect: func(c *mockControllerRecorder) {
				c.SetBreakpoint(gomock.Any(), entity.SetBreakpointRequest{ClassPattern: "com.example.Main", Line: 12}).Return(entity.Breakpoint{}, nil)
			},
		},
		{
			name:   "remove breakpoint",
			method: MethodRemoveBreakpoint,
			params: entity.RemoveRequest{ID: 3},
			expect: func(c *mockControllerRecorder) { c.RemoveBreakpoint(gomock.Any(), int64(3)).Return(nil) },
		},
		{
			name:   "list breakpoints",
			method: MethodListBreakpoints,
			expect: func(c *mockControllerRecorder) { c.ListBreakpoints(gomock.Any()).Return([]entity.Breakpoint{}, nil) },
		},
		{
			name:   "set exception breakpoint",
			method: MethodSetExceptionBreakpoint,
			params: entity.SetExceptionBreakpointRequest{ClassPattern: "*", Uncaught: true},
			expect: func(c *mockControllerRecorder) {
				c.SetExceptionBreakpoint(gomock.Any(), entity.SetExceptionBreakpointRequest{ClassPattern: "*", Uncaught: true}).Return(entity.ExceptionBreakpoint{}, nil)
			},
		},
		{
			name:   "remove exception breakpoint",
			method: MethodRemoveExceptionBreakpoint,
			params: entity.RemoveRequest{ID: 4},
			expect: func(c *mockControllerRecorder) { c.RemoveExceptionBreakpoint(gomock.Any(), int64(4)).Return(nil) },
		},
		{
			name:   "list exception breakpoints",
			method: MethodListExceptionBreakpoints,
			expect: func(c *mockControllerRecorder) {
				c.ListExceptionBreakpoints(gomock.Any()).Return([]entity.ExceptionBreakpoint{}, nil)
			},
		},
		{
			name:   "step",
			method: MethodStep,
			params: entity.StepRequest{ThreadID: threadID, Kind: "over"},
			expect: func(c *mockControllerRecorder) {
				c.Step(gomock.Any(), entity.StepRequest{ThreadID: threadID, Kind: "over"}).Return(entity.StepResult{}, nil)
			},
		},
		{
			name:   "resume",
			method: MethodResume,
			params: entity.ResumeRequest{ThreadID: &threadID},
			expect: func(c *mockControllerRecorder) {
				c.Resume(gomock.Any(), entity.ResumeRequest{ThreadID: &threadID}).Return(entity.ResumeResult{}, nil)
			},
		},
		{
			name:   "threads",
			method: MethodThreads,
			expect: func(c *mockControllerRecorder) { c.Threads(gomock.Any()).Return([]entity.SuspendedThread{}, nil) },
		},
		{
			name:   "inspect",
			method: MethodInspect,
			params: entity.InspectRequest{ThreadID: threadID, Path: "user.name"},
			expect: func(c *mockControllerRecorder) {
				c.Inspect(gomock.Any(), entity.InspectRequest{ThreadID: threadID, Path: "user.name"}).Return(&entity.Inspection{}, nil)
			},
		},
		{
			name:   "evaluate",
			method: MethodEvaluate,
			params: entity.EvaluateRequest{ThreadID: threadID, Expression: "count > 5"},
			expect: func(c *mockControllerRecorder) {
				c.Evaluate(gomock.Any(), entity.EvaluateRequest{ThreadID: threadID, Expression: "count > 5"}).Return(entity.EvaluateResult{OK: true}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := newRouter(t)
			tt.expect(c.EXPECT())

			err := r.HandleReq(context.Background(), newMockReplier(), newCall(t, tt.method, tt.params))
			assert.NoError(t, err)

			counters := r.stats.(tally.TestScope).Snapshot().Counters()
			assert.EqualValues(t, 1, counters["testing.requests+method="+tt.method].Value())
		})
	}
}

func TestHandleReqSessionContext(t *testing.T) {
	r, c := newRouter(t)
	c.EXPECT().Detach(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		id, err := mapper.ContextToSessionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, r.uuid, id)
		return nil
	})

	assert.NoError(t, r.HandleReq(context.Background(), newMockReplier(), newCall(t, MethodDetach, nil)))
}

func TestHandleReqUnknownMethod(t *testing.T) {
	r, _ := newRouter(t)

	err := r.HandleReq(context.Background(), newMockReplier(), newCall(t, "debug/unknown", nil))
	assert.ErrorIs(t, err, jsonrpc2.ErrMethodNotFound)

	counters := r.stats.(tally.TestScope).Snapshot().Counters()
	assert.EqualValues(t, 1, counters["testing.unknown_methods+"].Value())
}
