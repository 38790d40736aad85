package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/manjumh021/flow-manager/internal/task"
)

// Test that Create registers a RUNNING record retrievable by its id.
func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()

	created := store.Create("flow-001", "task1")
	if created.ExecutionID == "" {
		t.Fatal("Expected a generated execution id")
	}
	if created.Status != StatusRunning {
		t.Errorf("Expected RUNNING, got %s", created.Status)
	}
	if created.CurrentTask != "task1" {
		t.Errorf("Expected current_task 'task1', got %q", created.CurrentTask)
	}

	got, err := store.Get(created.ExecutionID)
	if err != nil {
		t.Fatalf("Expected record, got error: %v", err)
	}
	if got.FlowID != "flow-001" {
		t.Errorf("Expected flow id 'flow-001', got %q", got.FlowID)
	}
	if got.StartTime.IsZero() {
		t.Error("Expected a start time")
	}
	if got.EndTime != nil {
		t.Error("Expected no end time on a running record")
	}
}

// Test that unknown ids return ErrExecutionNotFound.
func TestStore_GetUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Get("no-such-id")
	if !errors.Is(err, ErrExecutionNotFound) {
		t.Errorf("Expected ErrExecutionNotFound, got %v", err)
	}
}

// Test that snapshots are isolated: mutating a returned state does not
// leak into the store.
func TestStore_SnapshotIsolation(t *testing.T) {
	store := NewStore()
	created := store.Create("flow-001", "task1")
	store.appendResult(created.ExecutionID, task.Success("task1", "one", nil))

	snapshot, _ := store.Get(created.ExecutionID)
	snapshot.Status = StatusError
	snapshot.ExecutionHistory[0].Message = "tampered"
	snapshot.ExecutionHistory = append(snapshot.ExecutionHistory, task.Failure("task2", "injected"))

	fresh, _ := store.Get(created.ExecutionID)
	if fresh.Status != StatusRunning {
		t.Errorf("Expected stored status untouched, got %s", fresh.Status)
	}
	if len(fresh.ExecutionHistory) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(fresh.ExecutionHistory))
	}
	if fresh.ExecutionHistory[0].Message != "one" {
		t.Errorf("Expected stored message untouched, got %q", fresh.ExecutionHistory[0].Message)
	}
}

// Test that finish is a one-way door: a second call with a different
// status does not move the record again.
func TestStore_FinishIdempotent(t *testing.T) {
	store := NewStore()
	created := store.Create("flow-001", "task1")

	store.finish(created.ExecutionID, StatusCompleted, "")
	first, _ := store.Get(created.ExecutionID)

	store.finish(created.ExecutionID, StatusError, "late error")
	second, _ := store.Get(created.ExecutionID)

	if second.Status != StatusCompleted {
		t.Errorf("Expected status to stay COMPLETED, got %s", second.Status)
	}
	if second.ErrorMessage != "" {
		t.Errorf("Expected no error message, got %q", second.ErrorMessage)
	}
	if first.EndTime == nil || second.EndTime == nil || !second.EndTime.Equal(*first.EndTime) {
		t.Error("Expected the end time from the first finish to be kept")
	}
}

// Test concurrent creates and reads under the race detector.
func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created := store.Create(fmt.Sprintf("flow-%03d", i), "task1")
			store.appendResult(created.ExecutionID, task.Success("task1", "", nil))
			store.setCurrentTask(created.ExecutionID, "task2")
			if _, err := store.Get(created.ExecutionID); err != nil {
				t.Errorf("Expected record for %s: %v", created.ExecutionID, err)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Expected 50 records, got %d", store.Len())
	}
}

// Test that History hands out a copy, not the live slice.
func TestStore_HistoryCopy(t *testing.T) {
	store := NewStore()
	created := store.Create("flow-001", "task1")
	store.appendResult(created.ExecutionID, task.Success("task1", "one", nil))

	history := store.History(created.ExecutionID)
	history[0].Message = "tampered"

	fresh := store.History(created.ExecutionID)
	if fresh[0].Message != "one" {
		t.Errorf("Expected stored history untouched, got %q", fresh[0].Message)
	}

	if store.History("no-such-id") != nil {
		t.Error("Expected nil history for an unknown id")
	}
}
