package engine

import (
	"time"

	"github.com/manjumh021/flow-manager/internal/task"
)

// ExecutionStatus is the lifecycle state of one flow run.
// RUNNING transitions to exactly one of the terminal states.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "RUNNING"
	StatusCompleted ExecutionStatus = "COMPLETED"
	StatusFailed    ExecutionStatus = "FAILED"
	StatusError     ExecutionStatus = "ERROR"
)

// Terminal reports whether the status can no longer change.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusError
}

// ExecutionState tracks one run of a flow. It is mutated only by the
// orchestrator driving the run (through the store) and becomes immutable
// once the status reaches a terminal value.
type ExecutionState struct {
	ExecutionID      string          `json:"execution_id"`
	FlowID           string          `json:"flow_id"`
	Status           ExecutionStatus `json:"status"`
	CurrentTask      string          `json:"current_task,omitempty"`
	ExecutionHistory []task.Result   `json:"execution_history"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          *time.Time      `json:"end_time,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
}

// clone returns a deep copy so readers never observe later appends.
func (s *ExecutionState) clone() *ExecutionState {
	c := *s
	c.ExecutionHistory = make([]task.Result, len(s.ExecutionHistory))
	copy(c.ExecutionHistory, s.ExecutionHistory)
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return &c
}
