package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// StateCell is the integer owned by the base module, seen through its accessor functions.
// There is a single writer (the host thread), so no locking is done.
type StateCell struct {
	get func() int32
	set func(int32)
}

// NewStateCell binds a cell to the base module getter and setter.
func NewStateCell(get func() int32, set func(int32)) *StateCell {
	return &StateCell{get: get, set: set}
}

// Get reads the current value.
func (c *StateCell) Get() int32 {
	return c.get()
}

// Set stores a new value.
func (c *StateCell) Set(v int32) {
	c.set(v)
}

// CheckLiveness verifies the cell starts at zero and round-trips a write.
func (c *StateCell) CheckLiveness() error {
	if got := c.Get(); got != 0 {
		return zerr.Wrap(ErrLivenessCheckFailed, fmt.Sprintf("initial value is %d, expected 0", got))
	}
	c.Set(1)
	if got := c.Get(); got != 1 {
		return zerr.Wrap(ErrLivenessCheckFailed, fmt.Sprintf("value is %d after writing 1", got))
	}
	return nil
}

// HostState is a stage of the load sequence.
type HostState int

const (
	StateNotLoaded HostState = iota
	StateRuntimeLoaded
	StateBaseLoaded
	StatePluginLoaded
	StateServiceInvoked
	StateDone
	StateFailed
)

var hostStateNames = [...]string{
	StateNotLoaded:      "not-loaded",
	StateRuntimeLoaded:  "runtime-loaded",
	StateBaseLoaded:     "base-loaded",
	StatePluginLoaded:   "plugin-loaded",
	StateServiceInvoked: "service-invoked",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s HostState) String() string {
	if s < 0 || int(s) >= len(hostStateNames) {
		return "unknown"
	}
	return hostStateNames[s]
}

// Next returns the state that follows s in a successful run.
// Terminal states return themselves.
func (s HostState) Next() HostState {
	if s >= StateDone {
		return s
	}
	return s + 1
}
