package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Kinds(t *testing.T) {
	assert.Equal(t, KindMouseMove, MouseMove(10, 20, 5).Kind)
	assert.Equal(t, KindMouseClick, MouseClick(ButtonLeft, true, 5).Kind)
	assert.Equal(t, KindKeyPress, KeyEdge("a", true, 5).Kind)
	assert.Equal(t, KindKeyRelease, KeyEdge("a", false, 5).Kind)
	assert.Equal(t, KindDelay, Delay(100, 5).Kind)
	assert.Equal(t, KindImageFind, ImageFind("x.png", 0.8, 5000, 5).Kind)
}

func TestTotal_LastTimestamp(t *testing.T) {
	events := []Event{
		MouseMove(0, 0, 0),
		MouseMove(5, 5, 100),
		MouseMove(9, 9, 350),
	}
	assert.Equal(t, int64(350), Total(events))
}

func TestTotal_DelaysAreAdditive(t *testing.T) {
	// Delay waits are not on the timestamp scale, so they extend the total
	// even when the delay event is not the last one.
	events := []Event{
		MouseMove(0, 0, 0),
		Delay(500, 50),
		MouseMove(9, 9, 350),
	}
	assert.Equal(t, int64(850), Total(events))
}

func TestTotal_Empty(t *testing.T) {
	assert.Equal(t, int64(0), Total(nil))
}

func TestJSONRoundTrip_AllKinds(t *testing.T) {
	original := []Event{
		MouseMove(100, 200, 0),
		MouseClick(ButtonRight, true, 15),
		MouseClick(ButtonRight, false, 90),
		KeyEdge("enter", true, 120),
		KeyEdge("enter", false, 180),
		Delay(2500, 200),
		ImageFind("target.png", 0.85, 10000, 300),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded []Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
