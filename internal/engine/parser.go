package engine

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Parse turns a raw structured definition into a validated Flow. The
// optional top-level "flow" wrapper is accepted. On failure the returned
// error is a *ValidationError carrying every violation found; no partial
// Flow is ever handed out.
func Parse(raw map[string]any) (*Flow, error) {
	flow, violations := decode(raw)
	if flow != nil {
		violations = append(violations, Validate(flow)...)
	}

	for _, v := range violations {
		if v.Severity == SeverityError {
			return nil, &ValidationError{Violations: violations}
		}
	}
	return flow, nil
}

// Check validates a raw definition without constructing a usable Flow.
// It never fails; the report is empty for a valid definition. Calling it
// twice on the same input yields the same report.
func Check(raw map[string]any) []Violation {
	flow, violations := decode(raw)
	if flow != nil {
		violations = append(violations, Validate(flow)...)
	}
	return violations
}

func decode(raw map[string]any) (*Flow, []Violation) {
	if len(raw) == 0 {
		return nil, []Violation{{
			Field:    "flow",
			Message:  "definition is empty",
			Severity: SeverityError,
		}}
	}

	if wrapped, ok := raw["flow"].(map[string]any); ok {
		raw = wrapped
	}

	var flow Flow
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &flow,
	})
	if err != nil {
		return nil, []Violation{{
			Field:    "flow",
			Message:  fmt.Sprintf("cannot decode definition: %v", err),
			Severity: SeverityError,
		}}
	}

	if err := decoder.Decode(raw); err != nil {
		var violations []Violation
		if merr, ok := err.(*mapstructure.Error); ok {
			for _, msg := range merr.Errors {
				violations = append(violations, Violation{
					Field:    "flow",
					Message:  msg,
					Severity: SeverityError,
				})
			}
		} else {
			violations = append(violations, Violation{
				Field:    "flow",
				Message:  err.Error(),
				Severity: SeverityError,
			})
		}
		return nil, violations
	}

	// An absent outcome defaults to "success", matching the original
	// wire format.
	for i := range flow.Conditions {
		if flow.Conditions[i].Outcome == "" {
			flow.Conditions[i].Outcome = OutcomeSuccess
		}
	}

	return &flow, nil
}

// Validate runs every structural check on a decoded flow and reports all
// violations in one pass. It never mutates the flow and detects no
// routing cycles; cycles are the orchestrator's run-time concern.
func Validate(f *Flow) []Violation {
	var violations []Violation
	addError := func(field, format string, args ...any) {
		violations = append(violations, Violation{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}
	addWarning := func(field, format string, args ...any) {
		violations = append(violations, Violation{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityWarning,
		})
	}

	if f.ID == "" {
		addError("id", "flow must have an 'id'")
	}
	if f.Name == "" {
		addError("name", "flow must have a 'name'")
	}
	if len(f.Tasks) == 0 {
		addError("tasks", "flow must have at least one task")
	}

	taskNames := make(map[string]bool, len(f.Tasks))
	for i, t := range f.Tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		if t.Name == "" {
			addError(field, "task has an empty name")
			continue
		}
		if taskNames[t.Name] {
			addError(field, "duplicate task name %q", t.Name)
			continue
		}
		taskNames[t.Name] = true
	}

	if f.StartTask == "" {
		addError("start_task", "flow must have a 'start_task'")
	} else if !taskNames[f.StartTask] {
		addError("start_task", "start_task %q not found in tasks", f.StartTask)
	}

	seenOutcomes := make(map[string]string) // source_task|outcome -> condition name
	for i, c := range f.Conditions {
		field := fmt.Sprintf("conditions[%d]", i)
		if c.Name != "" {
			field = fmt.Sprintf("conditions[%d] (%s)", i, c.Name)
		}

		if c.Name == "" {
			addError(field, "condition has an empty name")
		}

		if c.SourceTask == "" {
			addError(field, "condition has an empty source_task")
		} else if !taskNames[c.SourceTask] {
			addError(field, "condition references unknown source_task %q", c.SourceTask)
		}

		outcome := strings.ToLower(c.Outcome)
		if outcome != OutcomeSuccess && outcome != OutcomeFailure {
			addError(field, "condition outcome must be %q or %q, got %q",
				OutcomeSuccess, OutcomeFailure, c.Outcome)
		}

		for _, target := range []struct {
			name  string
			value string
		}{
			{"target_task_success", c.TargetTaskSuccess},
			{"target_task_failure", c.TargetTaskFailure},
		} {
			if target.value == "" {
				addError(field, "condition %s must name a task or %q", target.name, TerminalTarget)
			} else if target.value != TerminalTarget && !taskNames[target.value] {
				addError(field, "condition references unknown %s %q", target.name, target.value)
			}
		}

		// Later duplicates are unreachable: the evaluator always picks
		// the earliest condition for a (source_task, outcome) pair.
		if c.SourceTask != "" {
			key := c.SourceTask + "|" + outcome
			if first, dup := seenOutcomes[key]; dup {
				addWarning(field, "condition duplicates outcome %q for task %q already handled by %q and will never be consulted",
					outcome, c.SourceTask, first)
			} else {
				seenOutcomes[key] = c.Name
			}
		}
	}

	return violations
}
