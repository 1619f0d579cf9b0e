// Package app coordinates the single live recorder and player. All
// high-level operations the UI and the hotkey dispatcher invoke go through
// here, so recording and playback can never run at the same time.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cody-why/mouse-pilot/internal/config"
	"github.com/cody-why/mouse-pilot/internal/device"
	"github.com/cody-why/mouse-pilot/internal/hotkey"
	"github.com/cody-why/mouse-pilot/internal/i18n"
	"github.com/cody-why/mouse-pilot/internal/player"
	"github.com/cody-why/mouse-pilot/internal/recorder"
	"github.com/cody-why/mouse-pilot/internal/store"
)

// App owns exactly one recorder and at most one live player, plus the
// selection and playback configuration shared by UI and hotkeys.
type App struct {
	Store    *store.Manager
	Recorder *recorder.Recorder

	cfg   config.Config
	input device.Input

	// installMu serializes "stop old player, install new" so two racing
	// PlaySelection calls can never leave two runs alive.
	installMu sync.Mutex
	playerMu  sync.Mutex
	player    *player.Player

	selMu    sync.Mutex
	selected []string

	optMu      sync.Mutex
	repeat     int
	intervalMs int64

	feedback bool
}

func New(cfg config.Config, st *store.Manager, rec *recorder.Recorder, input device.Input) *App {
	return &App{
		Store:    st,
		Recorder: rec,
		cfg:      cfg,
		input:    input,
		repeat:   1,
	}
}

// EnableFeedback turns on audible cues for hotkey-triggered transitions.
func (a *App) EnableFeedback() {
	a.feedback = true
}

// BeginRecording stops any active playback first, then starts capture.
// Playback must be down before capture starts or the simulated input would
// be recorded as new macro content.
func (a *App) BeginRecording() {
	a.StopPlayback()
	a.Recorder.Start()
	a.beep("start")
}

// StopRecording halts capture, keeping the buffer.
func (a *App) StopRecording() {
	a.Recorder.Stop()
	a.beep("stop")
}

// ClearRecording empties the capture buffer.
func (a *App) ClearRecording() {
	a.Recorder.Clear()
}

// IsRecording is a non-blocking query.
func (a *App) IsRecording() bool {
	return a.Recorder.IsRecording()
}

// SaveRecording stores the buffered events under name and clears the buffer
// on success. On failure the buffer is left intact.
func (a *App) SaveRecording(name string) error {
	if name == "" {
		return fmt.Errorf("%s", i18n.T("macro_name_required"))
	}
	events := a.Recorder.Events()
	if len(events) == 0 {
		return fmt.Errorf("%s", i18n.T("no_events_to_save"))
	}
	if err := a.Store.Save(name, events); err != nil {
		return err
	}
	a.Recorder.Clear()
	return nil
}

// PlaySelection replays the selected macros. Silent no-op while recording or
// with an empty selection. Any previous player is fully stopped before the
// replacement starts dispatching.
func (a *App) PlaySelection(repeatCount int) {
	if a.Recorder.IsRecording() {
		return
	}
	names := a.Selected()
	if len(names) == 0 {
		return
	}
	macros := a.Store.Get(names)
	if len(macros) == 0 {
		return
	}

	a.installMu.Lock()
	defer a.installMu.Unlock()

	if old := a.currentPlayer(); old != nil {
		old.Stop()
	}

	p := player.New(macros, a.IntervalMs(), a.input)
	if ms := a.cfg.Playback.WaitSliceMs; ms > 0 {
		p.SetWaitSlice(time.Duration(ms) * time.Millisecond)
	}
	a.setPlayer(p)
	p.Start(repeatCount)
	a.beep("start")
}

// StopPlayback stops the live player if any. Idempotent.
func (a *App) StopPlayback() {
	a.installMu.Lock()
	defer a.installMu.Unlock()
	if p := a.currentPlayer(); p != nil {
		p.Stop()
	}
}

// StopAll stops both capture and playback. Idempotent.
func (a *App) StopAll() {
	a.Recorder.Stop()
	a.StopPlayback()
}

// IsPlaying is a non-blocking query.
func (a *App) IsPlaying() bool {
	if p := a.currentPlayer(); p != nil {
		return p.IsPlaying()
	}
	return false
}

// Status returns the live playback snapshot, idle when no player exists.
func (a *App) Status() player.Status {
	if p := a.currentPlayer(); p != nil {
		return p.Status()
	}
	return player.Status{}
}

func (a *App) currentPlayer() *player.Player {
	a.playerMu.Lock()
	defer a.playerMu.Unlock()
	return a.player
}

func (a *App) setPlayer(p *player.Player) {
	a.playerMu.Lock()
	a.player = p
	a.playerMu.Unlock()
}

// Selected returns the selected macro names in selection order.
func (a *App) Selected() []string {
	a.selMu.Lock()
	defer a.selMu.Unlock()
	out := make([]string, len(a.selected))
	copy(out, a.selected)
	return out
}

// SetSelected replaces the selection.
func (a *App) SetSelected(names []string) {
	a.selMu.Lock()
	a.selected = append([]string(nil), names...)
	a.selMu.Unlock()
}

// ToggleSelected adds or removes one name from the selection.
func (a *App) ToggleSelected(name string, on bool) {
	a.selMu.Lock()
	defer a.selMu.Unlock()

	for i, n := range a.selected {
		if n == name {
			if !on {
				a.selected = append(a.selected[:i], a.selected[i+1:]...)
			}
			return
		}
	}
	if on {
		a.selected = append(a.selected, name)
	}
}

// ClearSelection empties the selection.
func (a *App) ClearSelection() {
	a.selMu.Lock()
	a.selected = nil
	a.selMu.Unlock()
}

// RepeatCount returns the configured repeat count.
func (a *App) RepeatCount() int {
	a.optMu.Lock()
	defer a.optMu.Unlock()
	return a.repeat
}

// SetRepeatCount sets the repeat count, minimum 1.
func (a *App) SetRepeatCount(n int) {
	if n < 1 {
		n = 1
	}
	a.optMu.Lock()
	a.repeat = n
	a.optMu.Unlock()
}

// IntervalMs returns the inter-macro interval.
func (a *App) IntervalMs() int64 {
	a.optMu.Lock()
	defer a.optMu.Unlock()
	return a.intervalMs
}

// SetIntervalMs sets the inter-macro interval.
func (a *App) SetIntervalMs(ms int64) {
	if ms < 0 {
		ms = 0
	}
	a.optMu.Lock()
	a.intervalMs = ms
	a.optMu.Unlock()
}

// Run consumes dispatcher actions until the channel closes. Actions whose
// preconditions are not met are silent no-ops; an action that fails is
// logged and the loop continues.
func (a *App) Run(actions <-chan string) {
	for name := range actions {
		a.HandleAction(name)
	}
}

// HandleAction maps a shortcut action name to a coordinator operation.
func (a *App) HandleAction(name string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("action %s failed: %v", name, r)
		}
	}()

	switch name {
	case hotkey.ActionStartRecording:
		a.BeginRecording()
	case hotkey.ActionStopRecording:
		a.StopRecording()
	case hotkey.ActionClearRecording:
		a.ClearRecording()
	case hotkey.ActionStopPlayback:
		a.StopPlayback()
	case hotkey.ActionPlayOnce:
		a.PlaySelection(1)
	case hotkey.ActionPlayRepeat:
		a.PlaySelection(a.RepeatCount())
	default:
		log.Printf("unknown action %q", name)
	}
}
