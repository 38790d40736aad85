// Package engine implements the flow orchestration core: parsing and
// validation of flow definitions, outcome-based condition routing, the
// execution state machine, and the in-process execution store.
//
// The engine never talks to the network itself. Task implementations
// are resolved by name from a task.Registry supplied by the caller, and
// the HTTP layer lives in internal/server.
package engine
