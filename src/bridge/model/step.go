package model

import (
	"sync"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
)

// ActiveStep is the single in-flight step. Its completion is fulfilled at most once.
type ActiveStep struct {
	Thread target.ThreadID
	Kind   target.StepKind
	Watch  target.Watch

	once sync.Once
	done chan entity.StepResult
}

// NewActiveStep creates a step waiting for completion.
func NewActiveStep(thread target.ThreadID, kind target.StepKind, watch target.Watch) *ActiveStep {
	return &ActiveStep{
		Thread: thread,
		Kind:   kind,
		Watch:  watch,
		done:   make(chan entity.StepResult, 1),
	}
}

// Fulfill completes the step. Only the first call has any effect; it reports whether this call won.
func (s *ActiveStep) Fulfill(result entity.StepResult) bool {
	fulfilled := false
	s.once.Do(func() {
		s.done <- result
		fulfilled = true
	})
	return fulfilled
}

// Done delivers the single result.
func (s *ActiveStep) Done() <-chan entity.StepResult {
	return s.done
}

// TimeoutResult builds the timeout-shaped result delivered when the step cannot complete.
func (s *ActiveStep) TimeoutResult(remediation string) entity.StepResult {
	return entity.StepResult{
		Status:      entity.StepTimedOut,
		ThreadID:    uint64(s.Thread),
		Kind:        string(s.Kind),
		Remediation: remediation,
	}
}
