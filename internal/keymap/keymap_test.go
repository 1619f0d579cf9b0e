package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Aliases(t *testing.T) {
	assert.Equal(t, "esc", Normalize("Escape"))
	assert.Equal(t, "enter", Normalize("Return"))
	assert.Equal(t, "ctrl", Normalize("LControl"))
	assert.Equal(t, "shift", Normalize("RShift"))
	assert.Equal(t, "cmd", Normalize("LMeta"))
	assert.Equal(t, "pageup", Normalize("page_up"))
	assert.Equal(t, "a", Normalize(" A "))
}

func TestToRobot_SingleCharacters(t *testing.T) {
	got, ok := ToRobot("A")
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	got, ok = ToRobot("7")
	assert.True(t, ok)
	assert.Equal(t, "7", got)
}

func TestToRobot_SpecialKeys(t *testing.T) {
	for _, name := range []string{"f9", "enter", "esc", "space", "pageup", "ctrl"} {
		got, ok := ToRobot(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, got)
	}

	got, ok := ToRobot("Escape")
	assert.True(t, ok)
	assert.Equal(t, "esc", got)
}

func TestToRobot_Unresolvable(t *testing.T) {
	_, ok := ToRobot("definitely-not-a-key")
	assert.False(t, ok)

	_, ok = ToRobot("")
	assert.False(t, ok)
}

func TestIsModifier(t *testing.T) {
	assert.True(t, IsModifier("ctrl"))
	assert.True(t, IsModifier("LShift"))
	assert.True(t, IsModifier("option"))
	assert.False(t, IsModifier("a"))
	assert.False(t, IsModifier("f9"))
}
