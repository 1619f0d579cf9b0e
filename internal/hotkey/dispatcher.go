package hotkey

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cody-why/mouse-pilot/internal/device"
)

// Dispatcher polls the device for key-down edges matching Global shortcuts
// and emits the matching action name on a channel. It never mutates shared
// state itself; the coordinator's command loop consumes the channel.
type Dispatcher struct {
	poller    device.Poller
	shortcuts []Shortcut
	interval  time.Duration

	running atomic.Bool
	lifeMu  sync.Mutex
	done    chan struct{}
	actions chan string
}

// NewDispatcher builds a dispatcher over the shared poller. interval is the
// polling cadence; the original listens at ~60Hz.
func NewDispatcher(poller device.Poller, shortcuts []Shortcut, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Dispatcher{
		poller:    poller,
		shortcuts: shortcuts,
		interval:  interval,
		actions:   make(chan string, 8),
	}
}

// Actions is the stream of matched action names.
func (d *Dispatcher) Actions() <-chan string {
	return d.actions
}

// Start spawns the polling loop. No-op if already running.
func (d *Dispatcher) Start() {
	d.lifeMu.Lock()
	defer d.lifeMu.Unlock()
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	d.done = make(chan struct{})
	go d.loop()
}

// Stop halts the loop and waits for it to exit.
func (d *Dispatcher) Stop() {
	d.lifeMu.Lock()
	defer d.lifeMu.Unlock()
	if !d.running.CompareAndSwap(true, false) {
		return
	}
	<-d.done
}

// IsRunning is a non-blocking query.
func (d *Dispatcher) IsRunning() bool {
	return d.running.Load()
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	var last []string
	for d.running.Load() {
		time.Sleep(d.interval)

		st, err := d.poller.Snapshot()
		if err != nil {
			continue
		}

		for _, key := range st.Keys {
			if containsKey(last, key) {
				continue
			}
			// Key-down edge: first matching shortcut in table order wins.
			for _, sc := range d.shortcuts {
				if sc.Matches(key, st.Keys) {
					select {
					case d.actions <- sc.Name:
					default:
						log.Printf("hotkey action %s dropped, queue full", sc.Name)
					}
					break
				}
			}
		}
		last = st.Keys
	}
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
