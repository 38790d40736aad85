package engine

import (
	"strings"

	"github.com/manjumh021/flow-manager/internal/task"
)

// DecisionKind is the routing verdict for one completed step.
type DecisionKind string

const (
	// DecisionProceed routes to the next task.
	DecisionProceed DecisionKind = "proceed"
	// DecisionTerminate means the matched target is the terminal marker.
	DecisionTerminate DecisionKind = "terminate"
	// DecisionNoRoute means no condition governs the task's outcome.
	DecisionNoRoute DecisionKind = "no_route"
)

// Decision carries the routing verdict plus the name of the condition
// that produced it (empty for DecisionNoRoute).
type Decision struct {
	Kind      DecisionKind
	NextTask  string
	Condition string
}

// Evaluate routes a completed task's result through the flow's
// conditions. It is pure: it observes only the result and the condition
// list, never execution state.
//
// The first condition (in definition order) whose declared outcome
// equals the result status wins; when no outcome matches directly, the
// first condition governing the task is used and its two targets branch
// on the actual status. Later duplicates for the same outcome are
// ignored, keeping routing deterministic under ambiguity.
func Evaluate(result task.Result, conditions []Condition) Decision {
	var governing []Condition
	for _, c := range conditions {
		if c.SourceTask == result.TaskName {
			governing = append(governing, c)
		}
	}

	if len(governing) == 0 {
		return Decision{Kind: DecisionNoRoute}
	}

	outcome := OutcomeFailure
	if result.Status == task.StatusSuccess {
		outcome = OutcomeSuccess
	}

	chosen := governing[0]
	for _, c := range governing {
		if strings.EqualFold(c.Outcome, outcome) {
			chosen = c
			break
		}
	}

	target := chosen.TargetTaskFailure
	if result.Status == task.StatusSuccess {
		target = chosen.TargetTaskSuccess
	}

	if target == TerminalTarget {
		return Decision{Kind: DecisionTerminate, Condition: chosen.Name}
	}
	return Decision{Kind: DecisionProceed, NextTask: target, Condition: chosen.Name}
}
