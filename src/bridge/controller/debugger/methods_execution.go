package debugger

import (
	"context"
	"sort"
	"time"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"go.uber.org/multierr"
)

// Step steps a client-suspended thread and waits for the step to complete or time out.
func (c *controller) Step(ctx context.Context, req entity.StepRequest) (entity.StepResult, error) {
	a, err := c.current(ctx)
	if err != nil {
		return entity.StepResult{}, err
	}
	timeout := time.Duration(c.cfg.StepTimeoutMs) * time.Millisecond
	if req.TimeoutMs != nil {
		timeout = time.Duration(*req.TimeoutMs) * time.Millisecond
	}
	return a.stepper.Step(ctx, target.ThreadID(req.ThreadID), target.StepKind(req.Kind), timeout)
}

// Resume resumes one client-suspended thread, or all of them when no thread is given.
func (c *controller) Resume(ctx context.Context, req entity.ResumeRequest) (entity.ResumeResult, error) {
	a, err := c.current(ctx)
	if err != nil {
		return entity.ResumeResult{}, err
	}

	var threads []target.ThreadID
	if req.ThreadID != nil {
		th := target.ThreadID(*req.ThreadID)
		if !a.state.IsSuspended(th) {
			return entity.ResumeResult{}, errors.InvalidState("thread %d is not suspended", th)
		}
		threads = []target.ThreadID{th}
	} else {
		for th := range a.state.SuspendedThreads() {
			threads = append(threads, th)
		}
		sort.Slice(threads, func(i, j int) bool { return threads[i] < threads[j] })
	}

	suspended := a.state.SuspendedThreads()
	a.state.InvalidateHandles()
	resumed := make([]uint64, 0, len(threads))
	var resumeErr error
	for _, th := range threads {
		if !a.state.Unsuspend(th) {
			continue
		}
		if err := a.target.ResumeThread(ctx, th); err != nil {
			s := suspended[th]
			a.state.MarkSuspended(th, s.Since, s.Location)
			resumeErr = multierr.Append(resumeErr, err)
			continue
		}
		resumed = append(resumed, uint64(th))
	}
	c.stats.Counter("resumed_threads").Inc(int64(len(resumed)))
	if resumeErr != nil {
		return entity.ResumeResult{Resumed: resumed}, errors.Internal("resuming threads", resumeErr)
	}
	return entity.ResumeResult{Resumed: resumed}, nil
}

// Threads lists the client-suspended threads ordered by id. Thread names are best effort.
func (c *controller) Threads(ctx context.Context) ([]entity.SuspendedThread, error) {
	a, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	suspended := a.state.SuspendedThreads()
	out := make([]entity.SuspendedThread, 0, len(suspended))
	for th, s := range suspended {
		name, err := a.target.ThreadName(ctx, th)
		if err != nil {
			c.logger.Debugw("reading thread name failed", "thread", th, "error", err)
		}
		out = append(out, entity.SuspendedThread{
			ThreadID: uint64(th),
			Name:     name,
			Since:    s.Since,
			Location: s.Location,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ThreadID < out[j].ThreadID })
	return out, nil
}
