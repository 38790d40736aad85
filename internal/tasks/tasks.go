// Package tasks is the sample task catalog: a fetch → transform → store
// chain registered under the task names the sample flows reference.
package tasks

import (
	"github.com/manjumh021/flow-manager/internal/task"
)

// Task names used by the sample flow definitions.
const (
	FetchTaskName     = "task1"
	TransformTaskName = "task2"
	StoreTaskName     = "task3"
)

// Options configure the sample catalog.
type Options struct {
	// SourceURL makes the fetch task read records from an HTTP endpoint
	// instead of the built-in dataset.
	SourceURL string
	// FailureRate injects random fetch failures, 0..1.
	FailureRate float64
	// TransformExpression optionally post-processes the aggregates.
	TransformExpression string
	// StoreLocation overrides the simulated storage location.
	StoreLocation string
}

// Register binds the sample catalog to a registry.
func Register(r *task.Registry, opts Options) error {
	if err := r.Register(FetchTaskName, NewFetchTask(opts.SourceURL, opts.FailureRate)); err != nil {
		return err
	}
	if err := r.Register(TransformTaskName, NewTransformTask(opts.TransformExpression)); err != nil {
		return err
	}
	return r.Register(StoreTaskName, NewStoreTask(opts.StoreLocation))
}
