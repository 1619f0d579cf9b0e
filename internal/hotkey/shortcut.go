// Package hotkey matches pressed-key combinations against a shortcut table
// and turns global matches into named actions for the coordinator.
package hotkey

import (
	"strings"

	"github.com/cody-why/mouse-pilot/internal/i18n"
	"github.com/cody-why/mouse-pilot/internal/keymap"
)

// Scope controls where a shortcut is checked.
type Scope int

const (
	// ScopeGlobal shortcuts fire system-wide from the dispatcher loop.
	ScopeGlobal Scope = iota
	// ScopeUI shortcuts are only checked by the interface while focused.
	ScopeUI
)

// Action names emitted by the dispatcher and handled by the coordinator.
const (
	ActionStartRecording = "start_recording"
	ActionStopRecording  = "stop_recording"
	ActionClearRecording = "clear_recording"
	ActionPlayOnce       = "play_once"
	ActionPlayRepeat     = "play_repeat"
	ActionStopPlayback   = "stop_playback"
)

// Shortcut binds a key combination to a named action. Immutable once built.
type Shortcut struct {
	Name        string
	Key         string
	Ctrl        bool
	Shift       bool
	Alt         bool
	Description string
	Scope       Scope
}

// Matches checks a key-down edge against this shortcut. The edge's key must
// equal the shortcut key and every required modifier must be in the current
// held set; modifiers the shortcut does not require are not excluded.
// UI-scope shortcuts never match here.
func (s Shortcut) Matches(key string, held []string) bool {
	if s.Scope != ScopeGlobal {
		return false
	}
	if keymap.Normalize(key) != keymap.Normalize(s.Key) {
		return false
	}
	if s.Ctrl && !contains(held, "ctrl") {
		return false
	}
	if s.Shift && !contains(held, "shift") {
		return false
	}
	if s.Alt && !contains(held, "alt") {
		return false
	}
	return true
}

// DisplayText renders the combination for the help panel, e.g. "Ctrl+Shift+C".
func (s Shortcut) DisplayText() string {
	var parts []string
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	parts = append(parts, strings.ToUpper(s.Key[:1])+s.Key[1:])
	return strings.Join(parts, "+")
}

// Defaults returns the built-in shortcut table. Table order is match
// priority: the dispatcher fires the first matching entry.
func Defaults() []Shortcut {
	return []Shortcut{
		{Name: ActionStartRecording, Key: "f9", Description: i18n.T("sc_start_recording"), Scope: ScopeGlobal},
		{Name: ActionStopRecording, Key: "f10", Description: i18n.T("sc_stop_recording"), Scope: ScopeGlobal},
		{Name: ActionPlayOnce, Key: "f11", Description: i18n.T("sc_play_once"), Scope: ScopeGlobal},
		{Name: ActionPlayRepeat, Key: "f12", Description: i18n.T("sc_play_repeat"), Scope: ScopeGlobal},
		{Name: ActionStopPlayback, Key: "esc", Description: i18n.T("sc_stop_playback"), Scope: ScopeGlobal},
		{Name: ActionClearRecording, Key: "c", Ctrl: true, Shift: true, Description: i18n.T("sc_clear_recording"), Scope: ScopeGlobal},
	}
}

// GlobalKeys returns the set of keys bound to Global shortcuts. The capture
// engine suppresses edges on these keys so control hotkeys never become
// macro content. Key identity only; modifier state is ignored.
func GlobalKeys(shortcuts []Shortcut) map[string]bool {
	keys := make(map[string]bool)
	for _, s := range shortcuts {
		if s.Scope == ScopeGlobal {
			keys[keymap.Normalize(s.Key)] = true
		}
	}
	return keys
}

func contains(held []string, name string) bool {
	for _, k := range held {
		if k == name {
			return true
		}
	}
	return false
}
