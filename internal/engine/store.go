package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manjumh021/flow-manager/internal/task"
)

// Store is the keyed collection of execution records. It is the only
// shared mutable structure in the engine: each record is written by the
// single orchestrator goroutine that owns the run and read concurrently
// by status pollers. Every write holds the lock for one field update at
// most; reads return deep snapshots. Records are never deleted within
// the process lifetime.
type Store struct {
	mu         sync.RWMutex
	executions map[string]*ExecutionState
}

func NewStore() *Store {
	return &Store{
		executions: make(map[string]*ExecutionState),
	}
}

// Create registers a new RUNNING record and returns a snapshot of it.
func (s *Store) Create(flowID, startTask string) *ExecutionState {
	state := &ExecutionState{
		ExecutionID:      uuid.New().String(),
		FlowID:           flowID,
		Status:           StatusRunning,
		CurrentTask:      startTask,
		ExecutionHistory: []task.Result{},
		StartTime:        time.Now(),
	}

	s.mu.Lock()
	s.executions[state.ExecutionID] = state
	s.mu.Unlock()

	return state.clone()
}

// Get returns a snapshot of the identified record, or
// ErrExecutionNotFound.
func (s *Store) Get(executionID string) (*ExecutionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.executions[executionID]
	if !ok {
		return nil, ErrExecutionNotFound
	}
	return state.clone(), nil
}

// History returns a copy of the record's result history.
func (s *Store) History(executionID string) []task.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.executions[executionID]
	if !ok {
		return nil
	}
	history := make([]task.Result, len(state.ExecutionHistory))
	copy(history, state.ExecutionHistory)
	return history
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.executions)
}

func (s *Store) setCurrentTask(executionID, taskName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.executions[executionID]; ok {
		state.CurrentTask = taskName
	}
}

func (s *Store) appendResult(executionID string, result task.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.executions[executionID]; ok {
		state.ExecutionHistory = append(state.ExecutionHistory, result)
	}
}

// finish moves the record to a terminal status and stamps the end time.
func (s *Store) finish(executionID string, status ExecutionStatus, errorMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.executions[executionID]
	if !ok || state.Status.Terminal() {
		return
	}
	state.Status = status
	state.ErrorMessage = errorMessage
	now := time.Now()
	state.EndTime = &now
}
