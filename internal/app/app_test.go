package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cody-why/mouse-pilot/internal/config"
	"github.com/cody-why/mouse-pilot/internal/device"
	"github.com/cody-why/mouse-pilot/internal/event"
	"github.com/cody-why/mouse-pilot/internal/hotkey"
	"github.com/cody-why/mouse-pilot/internal/recorder"
	"github.com/cody-why/mouse-pilot/internal/store"
)

// idlePoller always reports the same state, so the recorder captures nothing
// on its own.
type idlePoller struct{}

func (idlePoller) Snapshot() (device.State, error) {
	return device.State{X: 1, Y: 1}, nil
}

// countingInput counts dispatches without driving real devices.
type countingInput struct {
	moves atomic.Int64
}

func (c *countingInput) MoveMouse(x, y int)              { c.moves.Add(1) }
func (c *countingInput) ToggleButton(string, bool) error { return nil }
func (c *countingInput) ToggleKey(string, bool) error    { return nil }

func newTestApp(t *testing.T) (*App, *countingInput) {
	t.Helper()

	st, err := store.NewManager(t.TempDir())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Playback.WaitSliceMs = 10

	input := &countingInput{}
	rec := recorder.New(idlePoller{}, nil, time.Millisecond, 0)
	a := New(cfg, st, rec, input)
	t.Cleanup(a.StopAll)
	return a, input
}

// saveMacro plants a stored macro whose sole event waits gap milliseconds
// before its first dispatch.
func saveMacro(t *testing.T, a *App, name string, gap int64) {
	t.Helper()
	require.NoError(t, a.Store.Save(name, []event.Event{event.MouseMove(5, 5, gap)}))
}

func TestApp_PlaySelectionPreconditions(t *testing.T) {
	a, input := newTestApp(t)
	saveMacro(t, a, "demo", 0)

	// Empty selection never starts a player.
	a.PlaySelection(1)
	assert.False(t, a.IsPlaying())

	// Selected names that no longer exist in the store resolve to nothing.
	a.SetSelected([]string{"ghost"})
	a.PlaySelection(1)
	assert.False(t, a.IsPlaying())

	// Recording blocks playback entirely.
	a.SetSelected([]string{"demo"})
	a.BeginRecording()
	a.PlaySelection(1)
	assert.False(t, a.IsPlaying())
	a.StopRecording()

	a.PlaySelection(1)
	require.Eventually(t, func() bool { return input.moves.Load() == 1 },
		time.Second, time.Millisecond)
}

func TestApp_BeginRecordingStopsPlaybackFirst(t *testing.T) {
	a, _ := newTestApp(t)
	saveMacro(t, a, "slow", 10000)
	a.SetSelected([]string{"slow"})

	a.PlaySelection(1)
	require.Eventually(t, a.IsPlaying, time.Second, time.Millisecond)

	a.BeginRecording()
	assert.False(t, a.IsPlaying(), "playback must be down before capture starts")
	assert.True(t, a.IsRecording())
}

func TestApp_PlaySelectionReplacesLivePlayer(t *testing.T) {
	a, _ := newTestApp(t)
	saveMacro(t, a, "slow", 10000)
	a.SetSelected([]string{"slow"})

	a.PlaySelection(1)
	require.Eventually(t, a.IsPlaying, time.Second, time.Millisecond)
	first := a.currentPlayer()
	require.NotNil(t, first)

	a.PlaySelection(1)
	second := a.currentPlayer()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.False(t, first.IsPlaying(), "old run must be fully stopped")
	assert.True(t, second.IsPlaying())

	a.StopPlayback()
	a.StopPlayback() // idempotent
	assert.False(t, a.IsPlaying())
}

func TestApp_SaveRecording(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.SaveRecording("")
	assert.Error(t, err, "a name is required")

	err = a.SaveRecording("empty")
	assert.Error(t, err, "an empty buffer has nothing to save")

	a.Recorder.AddDelay(100)
	require.NoError(t, a.SaveRecording("one-delay"))
	assert.True(t, a.Store.Exists("one-delay"))
	assert.Equal(t, 0, a.Recorder.Count(), "buffer clears after a successful save")

	// A failed save keeps the buffer for retry.
	a.Recorder.AddDelay(100)
	assert.Error(t, a.SaveRecording(""))
	assert.Equal(t, 1, a.Recorder.Count())
}

func TestApp_SelectionEditing(t *testing.T) {
	a, _ := newTestApp(t)

	a.ToggleSelected("b", true)
	a.ToggleSelected("a", true)
	a.ToggleSelected("b", true) // already present, order unchanged
	assert.Equal(t, []string{"b", "a"}, a.Selected())

	a.ToggleSelected("b", false)
	assert.Equal(t, []string{"a"}, a.Selected())

	a.ToggleSelected("missing", false) // removing an absent name is a no-op
	assert.Equal(t, []string{"a"}, a.Selected())

	a.ClearSelection()
	assert.Empty(t, a.Selected())
}

func TestApp_OptionClamping(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, 1, a.RepeatCount())
	a.SetRepeatCount(0)
	assert.Equal(t, 1, a.RepeatCount())
	a.SetRepeatCount(7)
	assert.Equal(t, 7, a.RepeatCount())

	a.SetIntervalMs(-50)
	assert.Equal(t, int64(0), a.IntervalMs())
	a.SetIntervalMs(250)
	assert.Equal(t, int64(250), a.IntervalMs())
}

func TestApp_HandleAction(t *testing.T) {
	a, input := newTestApp(t)
	saveMacro(t, a, "demo", 0)
	a.SetSelected([]string{"demo"})

	a.HandleAction(hotkey.ActionStartRecording)
	assert.True(t, a.IsRecording())
	a.HandleAction(hotkey.ActionStopRecording)
	assert.False(t, a.IsRecording())

	a.HandleAction(hotkey.ActionPlayOnce)
	require.Eventually(t, func() bool { return input.moves.Load() == 1 },
		time.Second, time.Millisecond)

	a.HandleAction(hotkey.ActionStopPlayback)
	assert.False(t, a.IsPlaying())

	a.HandleAction("no_such_action") // logged, never panics
}

func TestApp_RunDrainsActionChannel(t *testing.T) {
	a, _ := newTestApp(t)

	actions := make(chan string, 2)
	actions <- hotkey.ActionStartRecording
	actions <- hotkey.ActionStopRecording
	close(actions)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Run(actions)
	}()
	wg.Wait()

	assert.False(t, a.IsRecording())
}
