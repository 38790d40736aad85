package task

import (
	"context"
	"time"
)

// Status classifies the outcome of a single task invocation.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Result is the immutable record produced by one task invocation.
type Result struct {
	TaskName  string    `json:"task_name"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Success builds a SUCCESS result for the named task.
func Success(taskName, message string, data any) Result {
	return Result{
		TaskName:  taskName,
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Failure builds a FAILURE result for the named task.
func Failure(taskName, message string) Result {
	return Result{
		TaskName:  taskName,
		Status:    StatusFailure,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Context carries the execution data handed to a task. History is a copy
// of the results recorded so far; tasks read it, never rewrite it.
type Context struct {
	ExecutionID string
	FlowID      string
	History     []Result
}

// ResultOf returns the most recent result of the named task, if any.
func (c Context) ResultOf(taskName string) (Result, bool) {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].TaskName == taskName {
			return c.History[i], true
		}
	}
	return Result{}, false
}

// Executor is the capability invoked by the orchestrator for each step.
// The ctx carries the per-step deadline; implementations performing I/O
// should honor it. Returning an error means the executor could not
// produce a result at all; the orchestrator converts that into a
// synthetic FAILURE for the task.
type Executor interface {
	Execute(ctx context.Context, tc Context) (Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, tc Context) (Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, tc Context) (Result, error) {
	return f(ctx, tc)
}
