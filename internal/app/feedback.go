package app

import (
	"log"

	"github.com/gen2brain/beeep"
)

// beep plays an audible cue so hotkey-triggered transitions are noticeable
// without the window focused. Disabled by default; tests never hear it.
func (a *App) beep(kind string) {
	if !a.feedback {
		return
	}
	go func() {
		var err error
		switch kind {
		case "start":
			err = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration/2)
		case "stop":
			err = beeep.Beep(beeep.DefaultFreq*2, beeep.DefaultDuration/3)
		}
		if err != nil {
			log.Printf("beep: %v", err)
		}
	}()
}
