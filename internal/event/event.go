package event

// Kind identifies a macro event variant. The set is closed and tied to the
// on-disk macro format; new kinds require a format decision, not a registry.
type Kind string

const (
	KindMouseMove  Kind = "mouse_move"
	KindMouseClick Kind = "mouse_click"
	KindKeyPress   Kind = "key_press"
	KindKeyRelease Kind = "key_release"
	KindImageFind  Kind = "image_find"
	KindDelay      Kind = "delay"
)

// Mouse button names as stored in macros and accepted by the input backend.
const (
	ButtonLeft   = "left"
	ButtonMiddle = "middle"
	ButtonRight  = "right"
)

// Event is one recorded or synthetic step of a macro.
//
// Timestamp is milliseconds elapsed since the owning recording started,
// taken from a monotonic clock. Events in a macro are stored in
// non-decreasing timestamp order and never mutated after creation.
type Event struct {
	Kind      Kind  `json:"kind"`
	Timestamp int64 `json:"timestamp"`

	X       int    `json:"x,omitempty"`       // mouse X coordinate
	Y       int    `json:"y,omitempty"`       // mouse Y coordinate
	Button  string `json:"button,omitempty"`  // mouse button: left, middle, right
	Key     string `json:"key,omitempty"`     // symbolic key name
	Pressed bool   `json:"pressed,omitempty"` // edge direction for clicks

	DurationMs int64 `json:"duration_ms,omitempty"` // delay events

	ImagePath  string  `json:"image_path,omitempty"` // image recognition events
	Confidence float64 `json:"confidence,omitempty"`
	TimeoutMs  int64   `json:"timeout_ms,omitempty"`
}

// MouseMove creates a pointer move event at absolute screen coordinates.
func MouseMove(x, y int, ts int64) Event {
	return Event{Kind: KindMouseMove, Timestamp: ts, X: x, Y: y}
}

// MouseClick creates a button edge event. One event per press, one per release.
func MouseClick(button string, pressed bool, ts int64) Event {
	return Event{Kind: KindMouseClick, Timestamp: ts, Button: button, Pressed: pressed}
}

// KeyEdge creates a key press or release event for a symbolic key name.
func KeyEdge(key string, pressed bool, ts int64) Event {
	kind := KindKeyRelease
	if pressed {
		kind = KindKeyPress
	}
	return Event{Kind: kind, Timestamp: ts, Key: key}
}

// Delay creates a synthetic wait. Its duration is additive to the timestamp
// scale: playback waits the inter-event delta first, then the duration.
func Delay(durationMs, ts int64) Event {
	return Event{Kind: KindDelay, Timestamp: ts, DurationMs: durationMs}
}

// ImageFind creates an opaque image recognition step. Playback treats it as a
// leaf action with its own timeout; no screen matching is performed here.
func ImageFind(path string, confidence float64, timeoutMs, ts int64) Event {
	return Event{Kind: KindImageFind, Timestamp: ts, ImagePath: path, Confidence: confidence, TimeoutMs: timeoutMs}
}

// Total returns the playback duration of a sequence in milliseconds: the last
// timestamp plus all delay durations, since delay waits are not part of the
// timestamp scale. Used for progress display only, never for scheduling.
func Total(events []Event) int64 {
	if len(events) == 0 {
		return 0
	}
	total := events[len(events)-1].Timestamp
	for _, ev := range events {
		if ev.Kind == KindDelay {
			total += ev.DurationMs
		}
	}
	return total
}
