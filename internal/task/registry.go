package task

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps task names to their executors. It is built explicitly at
// process start and handed to the orchestrator; there is no ambient
// global registry. Registration happens before any execution starts,
// lookups are safe under concurrent runs.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// Register binds an executor to a task name, replacing any previous
// binding for that name.
func (r *Registry) Register(name string, e Executor) error {
	if name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if e == nil {
		return fmt.Errorf("executor for task %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[name] = e
	return nil
}

// Get returns the executor registered under name.
func (r *Registry) Get(name string) (Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[name]
	return e, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered task names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
