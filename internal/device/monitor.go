package device

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/cody-why/mouse-pilot/internal/keymap"
)

// Monitor is the production Poller. It consumes the global input hook into a
// guarded mirror of the device state; Snapshot copies the mirror. One Monitor
// is shared by the capture and hotkey loops.
type Monitor struct {
	mu      sync.Mutex
	x, y    int
	buttons map[string]bool
	keys    map[string]bool

	running atomic.Bool
	done    chan struct{}
}

func NewMonitor() *Monitor {
	return &Monitor{
		buttons: make(map[string]bool),
		keys:    make(map[string]bool),
	}
}

// Start begins consuming the global input hook. It fails once, at startup,
// when the platform refuses the hook (missing accessibility permission);
// dependent loops must not be started in that case.
func (m *Monitor) Start() error {
	if !m.running.CompareAndSwap(false, true) {
		return nil
	}

	// Seed the pointer position so the first capture tick has a baseline.
	x, y := robotgo.Location()
	m.mu.Lock()
	m.x, m.y = x, y
	m.mu.Unlock()

	evChan := hook.Start()
	if evChan == nil {
		m.running.Store(false)
		return fmt.Errorf("input hook unavailable")
	}

	m.done = make(chan struct{})
	go m.consume(evChan)
	return nil
}

// Stop ends the hook and waits for the consumer to drain.
func (m *Monitor) Stop() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	hook.End()
	<-m.done
}

func (m *Monitor) consume(evChan chan hook.Event) {
	defer close(m.done)
	for ev := range evChan {
		switch ev.Kind {
		case hook.MouseMove, hook.MouseDrag:
			m.mu.Lock()
			m.x, m.y = int(ev.X), int(ev.Y)
			m.mu.Unlock()
		case hook.MouseDown:
			m.setButton(buttonName(ev.Button), true)
		case hook.MouseUp:
			m.setButton(buttonName(ev.Button), false)
		case hook.KeyDown, hook.KeyHold:
			if name, ok := keymap.FromRawcode(ev.Rawcode); ok {
				m.setKey(name, true)
			}
		case hook.KeyUp:
			if name, ok := keymap.FromRawcode(ev.Rawcode); ok {
				m.setKey(name, false)
			}
		}
	}
}

func (m *Monitor) setButton(name string, down bool) {
	if name == "" {
		return
	}
	m.mu.Lock()
	if down {
		m.buttons[name] = true
	} else {
		delete(m.buttons, name)
	}
	m.mu.Unlock()
}

func (m *Monitor) setKey(name string, down bool) {
	m.mu.Lock()
	if down {
		m.keys[name] = true
	} else {
		delete(m.keys, name)
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of the current mirror. It errors only when the
// monitor is not running.
func (m *Monitor) Snapshot() (State, error) {
	if !m.running.Load() {
		return State{}, fmt.Errorf("device monitor not running")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{X: m.x, Y: m.y, Buttons: make(map[string]bool, len(m.buttons))}
	for b := range m.buttons {
		st.Buttons[b] = true
	}
	st.Keys = make([]string, 0, len(m.keys))
	for k := range m.keys {
		st.Keys = append(st.Keys, k)
	}
	sort.Strings(st.Keys)
	return st, nil
}

func buttonName(b uint16) string {
	switch b {
	case 1:
		return "left"
	case 2:
		return "right"
	case 3:
		return "middle"
	}
	return ""
}
