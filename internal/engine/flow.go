package engine

// TerminalTarget is the sentinel routing target meaning "no further task".
const TerminalTarget = "end"

// Outcome values a condition may declare.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Task struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Condition binds one task's outcome to the next task (or termination).
// The two target fields encode both branches: the actual result status
// picks which one applies.
type Condition struct {
	Name              string `json:"name" yaml:"name"`
	Description       string `json:"description" yaml:"description"`
	SourceTask        string `json:"source_task" yaml:"source_task"`
	Outcome           string `json:"outcome" yaml:"outcome"`
	TargetTaskSuccess string `json:"target_task_success" yaml:"target_task_success"`
	TargetTaskFailure string `json:"target_task_failure" yaml:"target_task_failure"`
}

// Flow is a validated graph of tasks and routing conditions. It is
// constructed only by Parse and read-only afterwards; slice order is
// definition order and is significant for condition tie-breaking.
type Flow struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	StartTask  string      `json:"start_task" yaml:"start_task"`
	Tasks      []Task      `json:"tasks" yaml:"tasks"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}

// TaskByName returns the task with the given name.
func (f *Flow) TaskByName(name string) (Task, bool) {
	for _, t := range f.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// ConditionsFor returns the conditions governing the named source task,
// preserving definition order.
func (f *Flow) ConditionsFor(sourceTask string) []Condition {
	var conditions []Condition
	for _, c := range f.Conditions {
		if c.SourceTask == sourceTask {
			conditions = append(conditions, c)
		}
	}
	return conditions
}
