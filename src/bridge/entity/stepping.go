package entity

import "time"

// StepStatus is the outcome of a step request.
type StepStatus string

const (
	// StepCompleted means the thread stopped at its next location.
	StepCompleted StepStatus = "completed"
	// StepTimedOut means no completion arrived in time or the target went away.
	StepTimedOut StepStatus = "timeout"
)

// StepRequest asks a suspended thread to step.
type StepRequest struct {
	ThreadID  uint64 `json:"threadId"`
	Kind      string `json:"kind"`
	TimeoutMs *int   `json:"timeoutMs,omitempty"`
}

// StepResult is the outcome of a step.
type StepResult struct {
	Status      StepStatus    `json:"status"`
	ThreadID    uint64        `json:"threadId"`
	Kind        string        `json:"kind"`
	Frame       *StoppedFrame `json:"frame,omitempty"`
	Remediation string        `json:"remediation,omitempty"`
}

// ResumeRequest resumes one thread, or every client-suspended thread when ThreadID is nil.
type ResumeRequest struct {
	ThreadID *uint64 `json:"threadId,omitempty"`
}

// ResumeResult lists the threads that were resumed.
type ResumeResult struct {
	Resumed []uint64 `json:"resumed"`
}

// SuspendedThread is a thread currently held for the client.
type SuspendedThread struct {
	ThreadID uint64    `json:"threadId"`
	Name     string    `json:"name"`
	Since    time.Time `json:"since"`
	Location string    `json:"location,omitempty"`
}
