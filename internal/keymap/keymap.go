// Package keymap is the static table between symbolic key names (as stored in
// macros and shortcut config) and the tokens the input backend understands.
package keymap

import (
	"strings"

	hook "github.com/robotn/gohook"
)

// Special keys robotgo accepts as-is. Single printable characters are always
// valid and bypass this table.
var specialKeys = map[string]bool{
	"enter": true, "tab": true, "space": true, "backspace": true, "delete": true,
	"esc": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true, "insert": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true,
	"f6": true, "f7": true, "f8": true, "f9": true, "f10": true,
	"f11": true, "f12": true, "f13": true, "f14": true, "f15": true,
	"f16": true, "f17": true, "f18": true, "f19": true, "f20": true,
	"ctrl": true, "shift": true, "alt": true, "cmd": true, "capslock": true,
	"num0": true, "num1": true, "num2": true, "num3": true, "num4": true,
	"num5": true, "num6": true, "num7": true, "num8": true, "num9": true,
	"num_lock": true, "audio_mute": true, "audio_vol_down": true, "audio_vol_up": true,
}

// aliases folds the name variants seen in hook output and user config onto
// the canonical tokens.
var aliases = map[string]string{
	"return": "enter", "escape": "esc",
	"control": "ctrl", "lctrl": "ctrl", "rctrl": "ctrl",
	"lshift": "shift", "rshift": "shift",
	"lalt": "alt", "ralt": "alt", "option": "alt",
	"command": "cmd", "lcmd": "cmd", "rcmd": "cmd",
	"meta": "cmd", "lmeta": "cmd", "rmeta": "cmd", "super": "cmd", "win": "cmd",
	"page_up": "pageup", "page_down": "pagedown",
	"caps_lock": "capslock",
	"spacebar":  "space",
}

// Normalize maps an arbitrary key name onto the canonical symbolic name.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[n]; ok {
		return alias
	}
	return n
}

// ToRobot resolves a symbolic key name to a robotgo key token. The second
// return value is false for names the backend cannot type; callers log and
// skip those, they are never fatal.
func ToRobot(name string) (string, bool) {
	n := Normalize(name)
	if len(n) == 1 {
		return n, true
	}
	if specialKeys[n] {
		return n, true
	}
	return "", false
}

// IsModifier reports whether a symbolic name is a modifier key.
func IsModifier(name string) bool {
	switch Normalize(name) {
	case "ctrl", "shift", "alt", "cmd":
		return true
	}
	return false
}

// FromRawcode renders a platform rawcode from the input hook as a symbolic
// name. Unknown rawcodes return false and the observation is dropped.
func FromRawcode(raw uint16) (string, bool) {
	ch := hook.RawcodetoKeychar(raw)
	if ch == "" {
		return "", false
	}
	n := Normalize(ch)
	if len(n) == 1 || specialKeys[n] {
		return n, true
	}
	return "", false
}
