package mapper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/factory"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/model"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/yarpc/yarpcerrors"
)

type fakeMapping map[string]string

func (m fakeMapping) Display(raw string) string {
	if v, ok := m[raw]; ok {
		return v
	}
	return raw
}

func TestLocationFormatting(t *testing.T) {
	loc := target.Location{Class: target.ClassRef{Name: "a.a"}, Method: "b", Line: 42}
	symbols := fakeMapping{"a.a": "com.example.Main"}

	assert.Equal(t, "a.a:42", LocationToString(loc, nil))
	assert.Equal(t, "com.example.Main:42", LocationToString(loc, symbols))
	assert.Equal(t, "com.example.Main.b:42", FrameToString(target.Frame{Location: loc}, symbols))

	native := target.Frame{Location: target.Location{Class: target.ClassRef{Name: "java.lang.Thread"}, Method: "sleep", Line: -1}}
	assert.Equal(t, "java.lang.Thread.sleep:?", FrameToString(native, symbols))
}

func TestBreakpointToEntity(t *testing.T) {
	watch := target.Watch{Kind: target.WatchLine, ID: 3}
	bp := model.Breakpoint{
		ID:             1,
		ClassPattern:   "com.example.*",
		Line:           9,
		Status:         entity.StatusSet,
		Location:       "com.example.Main:9",
		Condition:      "x > 1",
		LogMessage:     "x={x}",
		CaptureStack:   true,
		StackMaxFrames: 5,
		HitCount:       2,
		LineWatch:      &watch,
	}
	assert.Equal(t, entity.Breakpoint{
		ID:             1,
		ClassPattern:   "com.example.*",
		Line:           9,
		Status:         entity.StatusSet,
		Location:       "com.example.Main:9",
		Condition:      "x > 1",
		LogMessage:     "x={x}",
		CaptureStack:   true,
		StackMaxFrames: 5,
		HitCount:       2,
	}, BreakpointToEntity(bp))
	assert.Len(t, BreakpointsToEntities([]model.Breakpoint{bp, bp}), 2)

	ebp := model.ExceptionBreakpoint{ID: 4, ClassPattern: "*", Caught: true, Status: entity.StatusSet}
	assert.Equal(t, entity.ExceptionBreakpoint{ID: 4, ClassPattern: "*", Caught: true, Status: entity.StatusSet}, ExceptionBreakpointToEntity(ebp))
	assert.Len(t, ExceptionBreakpointsToEntities([]model.ExceptionBreakpoint{ebp}), 1)
}

func TestSessionMapping(t *testing.T) {
	id := factory.UUID()
	s := &entity.Session{UUID: id, ConnectedAt: time.Unix(10, 0)}
	assert.Equal(t, s, ModelToSession(SessionToModel(s)))

	ctx := factory.SessionContext(id)
	got, err := ContextToSessionUUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ContextToSessionUUID(context.Background())
	assert.Error(t, err)
}

func TestRequestMapping(t *testing.T) {
	cond := "count > 3"
	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), "debug/setBreakpoint", entity.SetBreakpointRequest{ClassPattern: "Main", Line: 3, Condition: &cond})
	require.NoError(t, err)
	params, err := RequestToSetBreakpointRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "Main", params.ClassPattern)
	assert.Equal(t, cond, *params.Condition)

	bad, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(2), "debug/setBreakpoint", 5)
	require.NoError(t, err)
	_, err = RequestToSetBreakpointRequest(bad)
	assert.True(t, errors.IsInvalidParams(err))

	empty, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(3), "debug/resume", nil)
	require.NoError(t, err)
	resume, err := RequestToResumeRequest(empty)
	require.NoError(t, err)
	assert.Nil(t, resume.ThreadID)
}

func TestToWireError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     yarpcerrors.Code
		wireCode jsonrpc2.Code
	}{
		{name: "invalid params", err: errors.InvalidParams("bad line"), code: yarpcerrors.CodeInvalidArgument, wireCode: jsonrpc2.InvalidParams},
		{name: "invalid state", err: fmt.Errorf("step: %w", errors.InvalidState("not suspended")), code: yarpcerrors.CodeFailedPrecondition, wireCode: CodeInvalidState},
		{name: "disconnected", err: &errors.DisconnectedError{Reason: "app_killed"}, code: yarpcerrors.CodeUnavailable, wireCode: CodeDisconnected},
		{name: "no session", err: &errors.NoSessionFoundError{}, code: yarpcerrors.CodeNotFound, wireCode: CodeNoSession},
		{name: "unknown session", err: &errors.UUIDNotFoundError{UUID: factory.UUID()}, code: yarpcerrors.CodeNotFound, wireCode: CodeNoSession},
		{name: "internal", err: errors.New("boom"), code: yarpcerrors.CodeInternal, wireCode: jsonrpc2.InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))

			var rpcError *jsonrpc2.Error
			require.ErrorAs(t, ToWireError(tt.err), &rpcError)
			assert.Equal(t, tt.wireCode, rpcError.Code)
			assert.Equal(t, tt.err.Error(), rpcError.Message)
		})
	}

	assert.Nil(t, ToWireError(nil))
	assert.Equal(t, yarpcerrors.CodeOK, ErrorCode(nil))
	passthrough := jsonrpc2.NewError(jsonrpc2.MethodNotFound, "nope")
	assert.Same(t, passthrough, ToWireError(passthrough))
}
