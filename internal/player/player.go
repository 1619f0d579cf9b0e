// Package player replays stored macros, reproducing recorded delays while
// staying cancellable within one wait slice.
package player

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cody-why/mouse-pilot/internal/device"
	"github.com/cody-why/mouse-pilot/internal/event"
	"github.com/cody-why/mouse-pilot/internal/keymap"
	"github.com/cody-why/mouse-pilot/internal/store"
)

// defaultWaitSlice caps a single uninterruptible sleep. Longer waits are
// decomposed so Stop takes effect within one slice.
const defaultWaitSlice = time.Second

// Status is an immutable point-in-time snapshot of a playback run. A new
// snapshot is published at the start of each macro; the zero value is idle.
type Status struct {
	Active      bool
	RepeatIndex int // 1-based
	RepeatTotal int
	MacroIndex  int // 1-based
	MacroTotal  int
	MacroName   string
	StartedAt   time.Time
	DurationMs  int64
}

// Player replays an ordered list of macros with N repeats and an inter-macro
// interval. At most one run is active per Player; the coordinator keeps at
// most one live Player across the application.
type Player struct {
	macros     []store.SavedMacro
	intervalMs int64
	input      device.Input
	waitSlice  time.Duration

	playing  atomic.Bool
	lifeMu   sync.Mutex
	done     chan struct{}
	statusMu sync.Mutex
	status   Status
}

// New builds a player. intervalMs is the pause between macros within one
// repeat; it is never inserted after the last macro.
func New(macros []store.SavedMacro, intervalMs int64, input device.Input) *Player {
	return &Player{
		macros:     macros,
		intervalMs: intervalMs,
		input:      input,
		waitSlice:  defaultWaitSlice,
	}
}

// SetWaitSlice overrides the wait slice cap. Smaller slices stop faster at
// the cost of more wakeups.
func (p *Player) SetWaitSlice(d time.Duration) {
	if d > 0 {
		p.waitSlice = d
	}
}

// IsPlaying is a non-blocking query.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Status returns the current snapshot.
func (p *Player) Status() Status {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	return p.status
}

// Start begins asynchronous replay. No-op if already playing.
func (p *Player) Start(repeatCount int) {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	if len(p.macros) == 0 || !p.playing.CompareAndSwap(false, true) {
		return
	}
	if repeatCount < 1 {
		repeatCount = 1
	}
	p.done = make(chan struct{})
	go p.run(repeatCount)
}

// Stop requests cancellation and blocks until no further simulated input
// will be issued. Idempotent; a stop of an idle player changes nothing.
func (p *Player) Stop() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	if !p.playing.Load() {
		return
	}
	p.playing.Store(false)
	<-p.done
}

// Wait blocks until the current run finishes. Used by headless mode.
func (p *Player) Wait() {
	p.lifeMu.Lock()
	done := p.done
	p.lifeMu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) run(repeatCount int) {
	defer close(p.done)
	defer p.playing.Store(false)
	defer p.setStatus(Status{})

replay:
	for repeat := 1; repeat <= repeatCount; repeat++ {
		for i, m := range p.macros {
			p.setStatus(Status{
				Active:      true,
				RepeatIndex: repeat,
				RepeatTotal: repeatCount,
				MacroIndex:  i + 1,
				MacroTotal:  len(p.macros),
				MacroName:   m.Name,
				StartedAt:   time.Now(),
				DurationMs:  event.Total(m.Events),
			})

			var lastTs int64
			for _, ev := range m.Events {
				if !p.wait(ev.Timestamp - lastTs) {
					break replay
				}
				lastTs = ev.Timestamp
				if !p.dispatch(ev) {
					break replay
				}
			}

			if i < len(p.macros)-1 && p.intervalMs > 0 {
				if !p.wait(p.intervalMs) {
					break replay
				}
			}
		}
	}
}

// wait sleeps for ms milliseconds in bounded slices, rechecking cancellation
// between slices. Returns false when cut short; the caller must unwind
// without dispatching further events.
func (p *Player) wait(ms int64) bool {
	remaining := time.Duration(ms) * time.Millisecond
	for remaining > 0 {
		if !p.playing.Load() {
			return false
		}
		slice := remaining
		if slice > p.waitSlice {
			slice = p.waitSlice
		}
		time.Sleep(slice)
		remaining -= slice
	}
	return p.playing.Load()
}

// dispatch issues one event's simulated input. Returns false only when a
// delay wait inside the event was cancelled. A panicking backend call is
// recovered so one bad event never kills the run.
func (p *Player) dispatch(ev event.Event) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch %s failed: %v", ev.Kind, r)
		}
	}()

	switch ev.Kind {
	case event.KindMouseMove:
		p.input.MoveMouse(ev.X, ev.Y)

	case event.KindMouseClick:
		// No synthetic move: the preceding mouse_move already positioned
		// the pointer.
		if err := p.input.ToggleButton(ev.Button, ev.Pressed); err != nil {
			log.Printf("toggle button %s: %v", ev.Button, err)
		}

	case event.KindKeyPress, event.KindKeyRelease:
		key, resolved := keymap.ToRobot(ev.Key)
		if !resolved {
			log.Printf("skip unresolvable key %q", ev.Key)
			return true
		}
		if err := p.input.ToggleKey(key, ev.Kind == event.KindKeyPress); err != nil {
			log.Printf("toggle key %s: %v", key, err)
		}

	case event.KindDelay:
		return p.wait(ev.DurationMs)

	case event.KindImageFind:
		// Opaque placeholder: honor the declared timeout, match nothing.
		log.Printf("image find %s not supported, waiting %dms", ev.ImagePath, ev.TimeoutMs)
		return p.wait(ev.TimeoutMs)

	default:
		log.Printf("unknown event kind %q skipped", ev.Kind)
	}
	return true
}
