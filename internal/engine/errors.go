package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExecutionNotFound is returned by the store for unknown execution IDs.
var ErrExecutionNotFound = errors.New("execution not found")

// Severity classifies a validation finding. Warnings never fail
// validation; errors do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation describes one problem found in a flow definition.
type Violation struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError reports every violation found in a definition in one
// pass, so a caller can fix the definition in a single round trip.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, v := range e.Violations {
		if v.Severity == SeverityError {
			msgs = append(msgs, v.String())
		}
	}
	return "invalid flow definition: " + strings.Join(msgs, "; ")
}

// RunErrorCode identifies run-time failures recorded on an execution.
// These surface as terminal ERROR status, distinct from business-level
// FAILED.
type RunErrorCode string

const (
	// ErrorCodeUnknownTask means the registry has no executor for the
	// current task name.
	ErrorCodeUnknownTask RunErrorCode = "UNKNOWN_TASK"
	// ErrorCodeNoRoute means a task completed but no condition governs
	// its outcome (a dead end discovered at run time).
	ErrorCodeNoRoute RunErrorCode = "NO_ROUTE"
	// ErrorCodeCycleGuard means the step counter exceeded the configured
	// maximum, indicating a routing cycle.
	ErrorCodeCycleGuard RunErrorCode = "CYCLE_GUARD"
)

// RunError is the canonical error recorded on an execution that ends in
// ERROR status.
type RunError struct {
	Code     RunErrorCode
	TaskName string
	Message  string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %s (task: %s)", e.Code, e.Message, e.TaskName)
}

func unknownTaskError(taskName string) *RunError {
	return &RunError{
		Code:     ErrorCodeUnknownTask,
		TaskName: taskName,
		Message:  fmt.Sprintf("no executor registered for task %q", taskName),
	}
}

func noRouteError(taskName string) *RunError {
	return &RunError{
		Code:     ErrorCodeNoRoute,
		TaskName: taskName,
		Message:  fmt.Sprintf("no condition governs the outcome of task %q", taskName),
	}
}

func cycleGuardError(taskName string, maxSteps int) *RunError {
	return &RunError{
		Code:     ErrorCodeCycleGuard,
		TaskName: taskName,
		Message:  fmt.Sprintf("step limit of %d exceeded, the condition graph likely contains a cycle", maxSteps),
	}
}
