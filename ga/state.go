// SPDX-License-Identifier: MIT

package ga

import "fmt"

// State is the lifecycle position of a Scheduler.
type State int32

const (
	Idle State = iota
	Running
	Completed
	Stopped
)

var stateNames = [...]string{"idle", "running", "completed", "stopped"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the run has ended (Completed or Stopped).
func (s State) Terminal() bool {
	return s == Completed || s == Stopped
}
