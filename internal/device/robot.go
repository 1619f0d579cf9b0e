package device

import "github.com/go-vgo/robotgo"

// Robot is the robotgo-backed Input used outside of tests.
type Robot struct{}

func (Robot) MoveMouse(x, y int) {
	robotgo.Move(x, y)
}

func (Robot) ToggleButton(button string, down bool) error {
	direction := "up"
	if down {
		direction = "down"
	}
	return robotgo.Toggle(button, direction)
}

func (Robot) ToggleKey(key string, down bool) error {
	direction := "up"
	if down {
		direction = "down"
	}
	return robotgo.KeyToggle(key, direction)
}
