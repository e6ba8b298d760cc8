package debugstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/model"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNextIDIsMonotonic(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	ids := make(chan int64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
	assert.Equal(t, int64(101), s.NextID())
}

func TestResolveBreakpointHappensOnce(t *testing.T) {
	s := New()
	load := target.Watch{Kind: target.WatchClassLoad, ID: 1}
	s.PutBreakpoint(&model.Breakpoint{ID: 1, Status: entity.StatusPending, Reason: entity.ReasonClassNotLoaded, LoadWatch: &load})

	line := target.Watch{Kind: target.WatchLine, ID: 2}
	cleared, ok := s.ResolveBreakpoint(1, "Main:10", line)
	require.True(t, ok)
	assert.Equal(t, &load, cleared)

	_, ok = s.ResolveBreakpoint(1, "Main:10", target.Watch{Kind: target.WatchLine, ID: 3})
	assert.False(t, ok)

	bp, ok := s.Breakpoint(1)
	require.True(t, ok)
	assert.Equal(t, entity.StatusSet, bp.Status)
	assert.Equal(t, "Main:10", bp.Location)
	assert.Empty(t, bp.Reason)
	assert.Equal(t, &line, bp.LineWatch)
	assert.Nil(t, bp.LoadWatch)

	_, ok = s.ResolveBreakpoint(42, "x", line)
	assert.False(t, ok)
}

func TestAttachLoadWatchOnlyWhilePending(t *testing.T) {
	s := New()
	load := target.Watch{Kind: target.WatchClassLoad, ID: 1}
	s.PutBreakpoint(&model.Breakpoint{ID: 1, Status: entity.StatusPending})
	s.PutExceptionBreakpoint(&model.ExceptionBreakpoint{ID: 2, Status: entity.StatusPending})

	require.True(t, s.AttachBreakpointLoadWatch(1, load))
	bp, _ := s.Breakpoint(1)
	assert.Equal(t, &load, bp.LoadWatch)
	require.True(t, s.AttachExceptionLoadWatch(2, load))
	exc, _ := s.ExceptionBreakpoint(2)
	assert.Equal(t, &load, exc.LoadWatch)

	_, ok := s.ResolveBreakpoint(1, "Main:10", target.Watch{Kind: target.WatchLine, ID: 3})
	require.True(t, ok)
	assert.False(t, s.AttachBreakpointLoadWatch(1, load), "set breakpoints take no load watch")
	_, ok = s.ResolveExceptionBreakpoint(2, "Boom", target.Watch{Kind: target.WatchException, ID: 4})
	require.True(t, ok)
	assert.False(t, s.AttachExceptionLoadWatch(2, load))

	assert.False(t, s.AttachBreakpointLoadWatch(9, load))
	assert.False(t, s.AttachExceptionLoadWatch(9, load))
}

func TestBreakpointRegistry(t *testing.T) {
	s := New()
	s.PutBreakpoint(&model.Breakpoint{ID: 2, Status: entity.StatusSet})
	s.PutBreakpoint(&model.Breakpoint{ID: 1, Status: entity.StatusPending})

	all := s.Breakpoints()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Len(t, s.PendingBreakpoints(), 1)

	count, ok := s.RecordHit(2, "Main:3")
	assert.True(t, ok)
	assert.Equal(t, int64(1), count)
	count, _ = s.RecordHit(2, "")
	assert.Equal(t, int64(2), count)
	bp, _ := s.Breakpoint(2)
	assert.Equal(t, "Main:3", bp.Location)
	_, ok = s.RecordHit(9, "")
	assert.False(t, ok)

	prog, err := condition.Compile("x > 1")
	require.NoError(t, err)
	s.CacheCondition(2, prog)
	bp, _ = s.Breakpoint(2)
	assert.Same(t, prog, bp.Compiled)

	removed, ok := s.RemoveBreakpoint(1)
	assert.True(t, ok)
	assert.Equal(t, int64(1), removed.ID)
	_, ok = s.RemoveBreakpoint(1)
	assert.False(t, ok)

	taken := s.TakeBreakpoints()
	assert.Len(t, taken, 1)
	assert.Empty(t, s.Breakpoints())
}

func TestExceptionBreakpointRegistry(t *testing.T) {
	s := New()
	load := target.Watch{Kind: target.WatchClassLoad, ID: 5}
	s.PutExceptionBreakpoint(&model.ExceptionBreakpoint{ID: 1, Status: entity.StatusPending, LoadWatch: &load})
	s.PutExceptionBreakpoint(&model.ExceptionBreakpoint{ID: 2, Status: entity.StatusSet})
	assert.Len(t, s.PendingExceptionBreakpoints(), 1)

	cleared, ok := s.ResolveExceptionBreakpoint(1, "com.example.Boom", target.Watch{Kind: target.WatchException, ID: 6})
	require.True(t, ok)
	assert.Equal(t, &load, cleared)
	_, ok = s.ResolveExceptionBreakpoint(1, "com.example.Boom", target.Watch{})
	assert.False(t, ok)

	bp, ok := s.ExceptionBreakpoint(1)
	require.True(t, ok)
	assert.Equal(t, "com.example.Boom", bp.ClassName)

	_, ok = s.RemoveExceptionBreakpoint(2)
	assert.True(t, ok)
	assert.Len(t, s.TakeExceptionBreakpoints(), 1)
	assert.Empty(t, s.ExceptionBreakpoints())
}

func TestStepLifecycle(t *testing.T) {
	s := New()
	step := model.NewActiveStep(7, target.StepInto, target.Watch{Kind: target.WatchStep, ID: 1})
	require.NoError(t, s.BeginStep(step))

	err := s.BeginStep(model.NewActiveStep(8, target.StepOver, target.Watch{}))
	assert.True(t, errors.IsInvalidState(err))

	assert.Same(t, step, s.ActiveStep())
	assert.Nil(t, s.TakeStep(8))
	assert.Same(t, step, s.TakeStep(7))
	assert.Nil(t, s.ActiveStep())

	require.NoError(t, s.BeginStep(step))
	assert.False(t, s.TakeStepIf(model.NewActiveStep(7, target.StepInto, target.Watch{})))
	assert.True(t, s.TakeStepIf(step))

	require.NoError(t, s.BeginStep(step))
	assert.Same(t, step, s.ClearStep())
	assert.Nil(t, s.ClearStep())
}

func TestSuspendedThreads(t *testing.T) {
	s := New()
	now := time.Now()
	s.MarkSuspended(3, now, "Main:1")
	s.MarkSuspended(1, now, "Main:2")

	assert.True(t, s.IsSuspended(3))
	assert.Equal(t, Suspension{Since: now, Location: "Main:2"}, s.SuspendedThreads()[1])
	assert.True(t, s.Unsuspend(3))
	assert.False(t, s.Unsuspend(3))
	assert.False(t, s.IsSuspended(3))

	s.MarkSuspended(2, now, "")
	assert.Equal(t, []target.ThreadID{1, 2}, s.ClearSuspended())
	assert.Empty(t, s.SuspendedThreads())
}

func TestHandles(t *testing.T) {
	s := New()
	assert.Empty(t, s.AssignHandle(target.Int(3)))
	assert.Empty(t, s.AssignHandle(target.Null()))

	h1 := s.AssignHandle(target.ObjectRef(10))
	assert.Equal(t, "h1", h1)
	assert.Equal(t, h1, s.AssignHandle(target.ObjectRef(10)))
	h2 := s.AssignHandle(target.ArrayRef(11))
	assert.Equal(t, "h2", h2)

	v, ok := s.Handle(h2)
	assert.True(t, ok)
	assert.Equal(t, target.ArrayRef(11), v)

	s.InvalidateHandles()
	_, ok = s.Handle(h1)
	assert.False(t, ok)
	assert.Equal(t, "h3", s.AssignHandle(target.ObjectRef(10)))
}

func TestDisconnectRecordedOnce(t *testing.T) {
	s := New()
	_, ok := s.Disconnected()
	assert.False(t, ok)

	assert.True(t, s.MarkDisconnected(entity.AppKilled, "killed"))
	assert.False(t, s.MarkDisconnected(entity.AppCrashed, "later"))

	d, ok := s.Disconnected()
	assert.True(t, ok)
	assert.Equal(t, Disconnect{Reason: entity.AppKilled, Detail: "killed"}, d)
}
