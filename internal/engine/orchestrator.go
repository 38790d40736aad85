package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manjumh021/flow-manager/internal/task"
	"github.com/manjumh021/flow-manager/internal/telemetry"
)

const (
	// DefaultMaxSteps bounds the step loop when no limit is configured.
	DefaultMaxSteps = 100
	// DefaultStepTimeout applies per task invocation when none is
	// configured.
	DefaultStepTimeout = 30 * time.Second
)

// Options tune the orchestrator's run-time guards.
type Options struct {
	// MaxSteps aborts a run with ERROR once exceeded. Cycles in the
	// condition graph are not rejected at parse time; this is the
	// run-time safety net.
	MaxSteps int
	// StepTimeout is the deadline for a single task invocation. On
	// expiry the orchestrator records a synthetic FAILURE for the task
	// instead of blocking forever.
	StepTimeout time.Duration
}

// Orchestrator drives flow runs. Each run advances strictly
// sequentially: a task result is fully recorded and routed before the
// next task begins. Separate runs never share state and may proceed
// concurrently.
type Orchestrator struct {
	l           *slog.Logger
	registry    *task.Registry
	store       *Store
	maxSteps    int
	stepTimeout time.Duration
}

func NewOrchestrator(l *slog.Logger, registry *task.Registry, store *Store, opts Options) *Orchestrator {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = DefaultStepTimeout
	}
	return &Orchestrator{
		l:           l,
		registry:    registry,
		store:       store,
		maxSteps:    opts.MaxSteps,
		stepTimeout: opts.StepTimeout,
	}
}

// Begin creates the execution record for a validated flow and returns
// its initial snapshot. The caller decides whether Run happens on the
// same goroutine (synchronous execute) or a new one (start + poll).
func (o *Orchestrator) Begin(flow *Flow) *ExecutionState {
	state := o.store.Create(flow.ID, flow.StartTask)
	telemetry.ExecutionsStarted.Inc()
	o.l.Info("starting flow execution",
		"execution_id", state.ExecutionID,
		"flow_id", flow.ID,
		"flow_name", flow.Name)
	return state
}

// Run drives the execution to a terminal status. Cancelling ctx abandons
// the run between steps: the record stops advancing but keeps its last
// consistent state. Run never panics and never returns before the record
// is either terminal or abandoned.
func (o *Orchestrator) Run(ctx context.Context, flow *Flow, executionID string) {
	current := flow.StartTask

	for step := 0; ; step++ {
		if ctx.Err() != nil {
			o.l.Warn("flow execution abandoned",
				"execution_id", executionID,
				"current_task", current)
			return
		}

		if step >= o.maxSteps {
			o.finish(executionID, StatusError, cycleGuardError(current, o.maxSteps).Error())
			return
		}

		o.store.setCurrentTask(executionID, current)

		executor, ok := o.registry.Get(current)
		if !ok {
			o.finish(executionID, StatusError, unknownTaskError(current).Error())
			return
		}

		o.l.Info("executing task",
			"execution_id", executionID,
			"task", current,
			"step", step)

		result, abandoned := o.invoke(ctx, executor, current, flow.ID, executionID)
		if abandoned {
			o.l.Warn("flow execution abandoned mid-step",
				"execution_id", executionID,
				"current_task", current)
			return
		}

		o.store.appendResult(executionID, result)
		telemetry.StepsExecuted.Inc()

		decision := Evaluate(result, flow.Conditions)
		switch decision.Kind {
		case DecisionTerminate:
			if result.Status == task.StatusSuccess {
				o.finish(executionID, StatusCompleted, "")
			} else {
				o.finish(executionID, StatusFailed, result.Message)
			}
			return
		case DecisionNoRoute:
			o.finish(executionID, StatusError, noRouteError(current).Error())
			return
		case DecisionProceed:
			o.l.Info("condition matched",
				"execution_id", executionID,
				"condition", decision.Condition,
				"next_task", decision.NextTask)
			current = decision.NextTask
		}
	}
}

// Execute is Begin followed by a synchronous Run, returning the final
// snapshot.
func (o *Orchestrator) Execute(ctx context.Context, flow *Flow) *ExecutionState {
	state := o.Begin(flow)
	o.Run(ctx, flow, state.ExecutionID)
	final, err := o.store.Get(state.ExecutionID)
	if err != nil {
		// The record was created by Begin above; this cannot happen.
		return state
	}
	return final
}

type invocation struct {
	result task.Result
	err    error
}

// invoke calls the executor with the per-step deadline applied. An
// executor error, panic, or deadline expiry becomes a synthetic FAILURE
// result for the task so routing proceeds uniformly. The second return
// value is true only when the parent context was cancelled, which is
// abandonment rather than task failure.
func (o *Orchestrator) invoke(ctx context.Context, executor task.Executor, taskName, flowID, executionID string) (task.Result, bool) {
	stepCtx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	tc := task.Context{
		ExecutionID: executionID,
		FlowID:      flowID,
		History:     o.store.History(executionID),
	}

	done := make(chan invocation, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- invocation{err: fmt.Errorf("task panicked: %v", r)}
			}
		}()
		result, err := executor.Execute(stepCtx, tc)
		done <- invocation{result: result, err: err}
	}()

	select {
	case inv := <-done:
		if inv.err != nil {
			if errors.Is(inv.err, context.Canceled) && ctx.Err() != nil {
				return task.Result{}, true
			}
			o.l.Error("task invocation failed",
				"execution_id", executionID,
				"task", taskName,
				"error", inv.err)
			return task.Failure(taskName, fmt.Sprintf("task execution error: %v", inv.err)), false
		}
		result := inv.result
		if result.TaskName == "" {
			result.TaskName = taskName
		}
		if result.Timestamp.IsZero() {
			result.Timestamp = time.Now()
		}
		return result, false
	case <-stepCtx.Done():
		if ctx.Err() != nil {
			return task.Result{}, true
		}
		o.l.Error("task invocation timed out",
			"execution_id", executionID,
			"task", taskName,
			"timeout", o.stepTimeout)
		return task.Failure(taskName, fmt.Sprintf("task execution error: deadline of %s exceeded", o.stepTimeout)), false
	}
}

func (o *Orchestrator) finish(executionID string, status ExecutionStatus, errorMessage string) {
	o.store.finish(executionID, status, errorMessage)
	telemetry.ExecutionsFinished.WithLabelValues(string(status)).Inc()

	if errorMessage != "" {
		o.l.Error("flow execution finished",
			"execution_id", executionID,
			"status", status,
			"error", errorMessage)
		return
	}
	o.l.Info("flow execution finished",
		"execution_id", executionID,
		"status", status)
}
