package task

import (
	"context"
	"reflect"
	"testing"
)

func noop() Executor {
	return ExecutorFunc(func(ctx context.Context, tc Context) (Result, error) {
		return Success("", "", nil), nil
	})
}

// Test register/get roundtrip and the Has shortcut.
func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("task1", noop()); err != nil {
		t.Fatalf("Expected registration to succeed: %v", err)
	}
	if _, ok := r.Get("task1"); !ok {
		t.Error("Expected task1 to be registered")
	}
	if r.Has("task9") {
		t.Error("Expected task9 to be absent")
	}
}

// Test that empty names and nil executors are rejected.
func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", noop()); err == nil {
		t.Error("Expected an error for an empty task name")
	}
	if err := r.Register("task1", nil); err == nil {
		t.Error("Expected an error for a nil executor")
	}
	if r.Has("task1") {
		t.Error("Expected no binding after failed registrations")
	}
}

// Test that re-registering a name replaces the previous executor.
func TestRegistry_Replace(t *testing.T) {
	r := NewRegistry()
	r.Register("task1", noop())
	r.Register("task1", ExecutorFunc(func(ctx context.Context, tc Context) (Result, error) {
		return Success("", "replaced", nil), nil
	}))

	e, _ := r.Get("task1")
	result, _ := e.Execute(context.Background(), Context{})
	if result.Message != "replaced" {
		t.Errorf("Expected the replacement executor, got %q", result.Message)
	}
}

// Test that Names returns a sorted listing.
func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register("task3", noop())
	r.Register("task1", noop())
	r.Register("task2", noop())

	want := []string{"task1", "task2", "task3"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
