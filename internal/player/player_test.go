package player

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cody-why/mouse-pilot/internal/event"
	"github.com/cody-why/mouse-pilot/internal/store"
)

// call is one recorded input dispatch with its arrival time.
type call struct {
	kind string // "move", "button", "key"
	name string
	down bool
	at   time.Time
}

// fakeInput records every dispatch instead of driving real devices.
type fakeInput struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeInput) record(c call) {
	c.at = time.Now()
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeInput) MoveMouse(x, y int) { f.record(call{kind: "move"}) }

func (f *fakeInput) ToggleButton(button string, down bool) error {
	f.record(call{kind: "button", name: button, down: down})
	return nil
}

func (f *fakeInput) ToggleKey(key string, down bool) error {
	f.record(call{kind: "key", name: key, down: down})
	return nil
}

func (f *fakeInput) snapshot() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}

func macro(name string, events ...event.Event) store.SavedMacro {
	return store.SavedMacro{Name: name, Events: events}
}

func TestPlayer_ReproducesRecordedGaps(t *testing.T) {
	m := macro("timing",
		event.MouseMove(1, 1, 0),
		event.MouseMove(2, 2, 100),
		event.MouseMove(3, 3, 350),
	)
	input := &fakeInput{}
	p := New([]store.SavedMacro{m}, 0, input)

	started := time.Now()
	p.Start(1)
	p.Wait()

	calls := input.snapshot()
	require.Len(t, calls, 3)

	// Gap between dispatches tracks the recorded timestamp deltas. Sleep
	// only overshoots, so assert a lower bound plus generous slack above.
	gap1 := calls[1].at.Sub(calls[0].at)
	gap2 := calls[2].at.Sub(calls[1].at)
	assert.GreaterOrEqual(t, gap1, 100*time.Millisecond)
	assert.Less(t, gap1, 400*time.Millisecond)
	assert.GreaterOrEqual(t, gap2, 250*time.Millisecond)
	assert.Less(t, gap2, 600*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(started), 350*time.Millisecond)
}

func TestPlayer_StopCutsLongWaitShort(t *testing.T) {
	m := macro("long",
		event.MouseMove(1, 1, 0),
		event.MouseMove(2, 2, 10000), // 10s gap, never reached
	)
	input := &fakeInput{}
	p := New([]store.SavedMacro{m}, 0, input)
	p.SetWaitSlice(20 * time.Millisecond)

	p.Start(1)
	require.Eventually(t, func() bool { return len(input.snapshot()) == 1 },
		time.Second, time.Millisecond)

	stopStart := time.Now()
	p.Stop()
	assert.Less(t, time.Since(stopStart), time.Second,
		"stop latency must be bounded by the wait slice, not the gap")

	assert.False(t, p.IsPlaying())
	assert.Equal(t, Status{}, p.Status(), "cancelled run must settle on idle status")
	assert.Len(t, input.snapshot(), 1, "no input may be issued after Stop returns")
}

func TestPlayer_RepeatAndIntervalComposition(t *testing.T) {
	first := macro("first", event.MouseMove(1, 1, 0), event.MouseMove(2, 2, 0))
	second := macro("second",
		event.MouseMove(3, 3, 0),
		event.MouseMove(4, 4, 0),
		event.MouseMove(5, 5, 0),
	)
	input := &fakeInput{}
	const intervalMs = 60
	p := New([]store.SavedMacro{first, second}, intervalMs, input)

	started := time.Now()
	p.Start(2)
	p.Wait()
	elapsed := time.Since(started)

	// 2 repeats x (2+3) events, every event dispatched.
	assert.Len(t, input.snapshot(), 10)

	// The interval runs between macros inside a repeat, never after the
	// last macro: exactly 2 interval waits across the run.
	assert.GreaterOrEqual(t, elapsed, 2*intervalMs*time.Millisecond)
	assert.Less(t, elapsed, 4*intervalMs*time.Millisecond)
}

func TestPlayer_StartValidation(t *testing.T) {
	input := &fakeInput{}

	empty := New(nil, 0, input)
	empty.Start(3)
	assert.False(t, empty.IsPlaying(), "no macros means nothing to start")
	empty.Stop() // idle stop is a no-op
	empty.Wait() // never-started wait returns immediately

	m := macro("busy", event.Delay(200, 0))
	p := New([]store.SavedMacro{m}, 0, input)
	p.SetWaitSlice(10 * time.Millisecond)
	p.Start(1)
	p.Start(5) // second start while running is ignored
	assert.True(t, p.IsPlaying())
	p.Stop()
	assert.False(t, p.IsPlaying())
}

func TestPlayer_StatusPublishedPerMacro(t *testing.T) {
	m := macro("visible", event.Delay(500, 0))
	p := New([]store.SavedMacro{m}, 0, &fakeInput{})
	p.SetWaitSlice(10 * time.Millisecond)

	p.Start(3)
	require.Eventually(t, func() bool { return p.Status().Active },
		time.Second, time.Millisecond)

	st := p.Status()
	assert.Equal(t, 3, st.RepeatTotal)
	assert.GreaterOrEqual(t, st.RepeatIndex, 1)
	assert.Equal(t, 1, st.MacroIndex)
	assert.Equal(t, 1, st.MacroTotal)
	assert.Equal(t, "visible", st.MacroName)
	assert.Equal(t, int64(500), st.DurationMs)
	assert.False(t, st.StartedAt.IsZero())

	p.Stop()
	assert.Equal(t, Status{}, p.Status())
}

func TestPlayer_DelayEventExtendsRun(t *testing.T) {
	m := macro("delayed",
		event.MouseMove(1, 1, 0),
		event.Delay(120, 0),
		event.MouseMove(2, 2, 0),
	)
	input := &fakeInput{}
	p := New([]store.SavedMacro{m}, 0, input)

	started := time.Now()
	p.Start(1)
	p.Wait()

	assert.Len(t, input.snapshot(), 2)
	assert.GreaterOrEqual(t, time.Since(started), 120*time.Millisecond)
}

func TestPlayer_UnresolvableKeySkippedWithoutAborting(t *testing.T) {
	m := macro("keys",
		event.KeyEdge("definitely-not-a-key", true, 0),
		event.KeyEdge("enter", true, 0),
		event.KeyEdge("enter", false, 0),
	)
	input := &fakeInput{}
	p := New([]store.SavedMacro{m}, 0, input)

	p.Start(1)
	p.Wait()

	calls := input.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "enter", calls[0].name)
	assert.True(t, calls[0].down)
	assert.Equal(t, "enter", calls[1].name)
	assert.False(t, calls[1].down)
}
