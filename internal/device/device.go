// Package device wraps the raw pointer/keyboard state query and the
// simulated-input backend behind small interfaces so the capture and
// playback loops stay testable.
package device

// State is one consistent snapshot of the input devices: pointer position,
// pressed mouse buttons and the set of held keys (symbolic names).
type State struct {
	X, Y    int
	Buttons map[string]bool
	Keys    []string
}

// HasKey reports whether a symbolic key name is in the held set.
func (s State) HasKey(name string) bool {
	for _, k := range s.Keys {
		if k == name {
			return true
		}
	}
	return false
}

// Poller gives the current device state. Snapshot errors are transient:
// polling loops skip the tick and continue.
type Poller interface {
	Snapshot() (State, error)
}

// Input issues simulated input. Implementations are synchronous and
// side-effecting; errors are only consumed for logging.
type Input interface {
	MoveMouse(x, y int)
	ToggleButton(button string, down bool) error
	ToggleKey(key string, down bool) error
}
