package engine

import (
	"testing"

	"github.com/manjumh021/flow-manager/internal/task"
)

func condition(name, source, outcome, onSuccess, onFailure string) Condition {
	return Condition{
		Name:              name,
		SourceTask:        source,
		Outcome:           outcome,
		TargetTaskSuccess: onSuccess,
		TargetTaskFailure: onFailure,
	}
}

// Test that a SUCCESS result with a matching condition routes to the
// condition's success target.
func TestEvaluate_SuccessRoutesToSuccessTarget(t *testing.T) {
	conditions := []Condition{
		condition("c1", "task1", "success", "task2", "end"),
	}

	d := Evaluate(task.Success("task1", "", nil), conditions)
	if d.Kind != DecisionProceed {
		t.Fatalf("Expected proceed, got %s", d.Kind)
	}
	if d.NextTask != "task2" {
		t.Errorf("Expected next task 'task2', got %q", d.NextTask)
	}
	if d.Condition != "c1" {
		t.Errorf("Expected matched condition 'c1', got %q", d.Condition)
	}
}

// Test that a FAILURE result with a matching condition routes to the
// condition's failure target.
func TestEvaluate_FailureRoutesToFailureTarget(t *testing.T) {
	conditions := []Condition{
		condition("c1", "task1", "failure", "task2", "task9"),
	}

	d := Evaluate(task.Failure("task1", "boom"), conditions)
	if d.Kind != DecisionProceed {
		t.Fatalf("Expected proceed, got %s", d.Kind)
	}
	if d.NextTask != "task9" {
		t.Errorf("Expected next task 'task9', got %q", d.NextTask)
	}
}

// Test the tie-break rule: with two conditions sharing source and
// outcome, the one earliest in the list always wins.
func TestEvaluate_TieBreakFirstWins(t *testing.T) {
	first := condition("first", "task1", "success", "task2", "end")
	second := condition("second", "task1", "success", "task3", "end")

	d := Evaluate(task.Success("task1", "", nil), []Condition{first, second})
	if d.NextTask != "task2" || d.Condition != "first" {
		t.Errorf("Expected the earliest condition to win, got %q via %q", d.NextTask, d.Condition)
	}

	// Order reversed, the (new) earliest wins instead.
	d = Evaluate(task.Success("task1", "", nil), []Condition{second, first})
	if d.NextTask != "task3" || d.Condition != "second" {
		t.Errorf("Expected the earliest condition to win, got %q via %q", d.NextTask, d.Condition)
	}
}

// Test that a task with zero governing conditions yields NoRoute.
func TestEvaluate_NoGoverningCondition(t *testing.T) {
	conditions := []Condition{
		condition("c1", "task2", "success", "task3", "end"),
	}

	d := Evaluate(task.Success("task1", "", nil), conditions)
	if d.Kind != DecisionNoRoute {
		t.Errorf("Expected no_route, got %s", d.Kind)
	}
}

// Test that the terminal marker produces Terminate.
func TestEvaluate_TerminalTarget(t *testing.T) {
	conditions := []Condition{
		condition("c1", "task3", "success", "end", "end"),
	}

	d := Evaluate(task.Success("task3", "", nil), conditions)
	if d.Kind != DecisionTerminate {
		t.Fatalf("Expected terminate, got %s", d.Kind)
	}
	if d.Condition != "c1" {
		t.Errorf("Expected condition 'c1', got %q", d.Condition)
	}
}

// Test within-condition branching: when no condition declares the
// result's outcome, the first governing condition still routes via its
// two targets.
func TestEvaluate_UnmatchedOutcomeBranches(t *testing.T) {
	conditions := []Condition{
		condition("c1", "task1", "success", "task2", "task9"),
	}

	d := Evaluate(task.Failure("task1", "boom"), conditions)
	if d.Kind != DecisionProceed {
		t.Fatalf("Expected proceed, got %s", d.Kind)
	}
	if d.NextTask != "task9" {
		t.Errorf("Expected the failure branch 'task9', got %q", d.NextTask)
	}
}

// Test that outcome matching is case-insensitive.
func TestEvaluate_OutcomeCaseInsensitive(t *testing.T) {
	conditions := []Condition{
		condition("loud", "task1", "SUCCESS", "task2", "end"),
	}

	d := Evaluate(task.Success("task1", "", nil), conditions)
	if d.Kind != DecisionProceed || d.NextTask != "task2" {
		t.Errorf("Expected case-insensitive match routing to 'task2', got %s/%q", d.Kind, d.NextTask)
	}
}
