// Package recorder turns continuous device state into discrete, ordered,
// timestamped macro events by polling and diffing snapshots.
package recorder

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cody-why/mouse-pilot/internal/device"
	"github.com/cody-why/mouse-pilot/internal/event"
	"github.com/cody-why/mouse-pilot/internal/hotkey"
)

// buttonOrder fixes the diff order for button edges within a tick.
var buttonOrder = []string{event.ButtonLeft, event.ButtonMiddle, event.ButtonRight}

// Recorder is the capture engine. The polling loop is the only writer to the
// event buffer, so append order equals temporal order.
type Recorder struct {
	poller   device.Poller
	interval time.Duration
	minDist  int
	suppress map[string]bool

	mu     sync.Mutex
	events []event.Event
	start  time.Time

	recording atomic.Bool
	lifeMu    sync.Mutex
	done      chan struct{}
}

// New builds a recorder over the shared poller. Key edges on Global shortcut
// keys are suppressed so the control hotkeys never end up in macros.
// interval is the polling cadence; minDist is the minimum pointer travel
// (in pixels, per axis) required to record a move, 0 records every change.
func New(poller device.Poller, shortcuts []hotkey.Shortcut, interval time.Duration, minDist int) *Recorder {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Recorder{
		poller:   poller,
		interval: interval,
		minDist:  minDist,
		suppress: hotkey.GlobalKeys(shortcuts),
	}
}

// Start begins a new capture session, discarding any unsaved events and
// resetting the relative clock. No-op while already recording.
func (r *Recorder) Start() {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if !r.recording.CompareAndSwap(false, true) {
		return
	}

	r.mu.Lock()
	r.events = nil
	r.start = time.Now()
	r.mu.Unlock()

	r.done = make(chan struct{})
	go r.loop()
}

// Stop halts the session and waits for the loop to exit. The buffer keeps
// its events.
func (r *Recorder) Stop() {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if !r.recording.CompareAndSwap(true, false) {
		return
	}
	<-r.done
}

// IsRecording is a non-blocking query.
func (r *Recorder) IsRecording() bool {
	return r.recording.Load()
}

// Clear empties the buffer and resets the clock reference.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.events = nil
	r.start = time.Time{}
	r.mu.Unlock()
}

// Events returns a copy of the buffered events without disturbing recording.
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns the number of buffered events.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Elapsed returns milliseconds since the current session started, 0 when no
// session has run. Monotonic: time.Since never observes wall-clock jumps.
func (r *Recorder) Elapsed() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedLocked()
}

func (r *Recorder) elapsedLocked() int64 {
	if r.start.IsZero() {
		return 0
	}
	return time.Since(r.start).Milliseconds()
}

// AddDelay appends a synthetic delay event at the current elapsed time.
func (r *Recorder) AddDelay(durationMs int64) {
	r.mu.Lock()
	r.events = append(r.events, event.Delay(durationMs, r.elapsedLocked()))
	r.mu.Unlock()
}

// AddImageFind appends an image recognition placeholder at the current
// elapsed time.
func (r *Recorder) AddImageFind(path string, confidence float64, timeoutMs int64) {
	r.mu.Lock()
	r.events = append(r.events, event.ImageFind(path, confidence, timeoutMs, r.elapsedLocked()))
	r.mu.Unlock()
}

func (r *Recorder) loop() {
	defer close(r.done)

	last, err := r.poller.Snapshot()
	hasLast := err == nil

	for r.recording.Load() {
		time.Sleep(r.interval)

		cur, err := r.poller.Snapshot()
		if err != nil {
			// Transient poll failure: skip the tick, fabricate nothing.
			continue
		}
		if !hasLast {
			last, hasLast = cur, true
			continue
		}

		r.diff(last, cur)
		last = cur
	}
}

// diff emits the events implied by two successive snapshots. Pointer moves
// come first: a press in the same tick logically happens at the post-move
// position.
func (r *Recorder) diff(last, cur device.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts := r.elapsedLocked()

	if cur.X != last.X || cur.Y != last.Y {
		if r.minDist <= 0 || abs(cur.X-last.X) >= r.minDist || abs(cur.Y-last.Y) >= r.minDist {
			r.events = append(r.events, event.MouseMove(cur.X, cur.Y, ts))
		}
	}

	for _, btn := range buttonOrder {
		if cur.Buttons[btn] != last.Buttons[btn] {
			r.events = append(r.events, event.MouseClick(btn, cur.Buttons[btn], ts))
		}
	}

	for _, key := range cur.Keys {
		if !last.HasKey(key) && !r.suppress[key] {
			r.events = append(r.events, event.KeyEdge(key, true, ts))
		}
	}
	for _, key := range last.Keys {
		if !cur.HasKey(key) && !r.suppress[key] {
			r.events = append(r.events, event.KeyEdge(key, false, ts))
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
