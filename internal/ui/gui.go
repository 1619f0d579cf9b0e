package ui

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cody-why/mouse-pilot/internal/app"
	"github.com/cody-why/mouse-pilot/internal/config"
	"github.com/cody-why/mouse-pilot/internal/hotkey"
	"github.com/cody-why/mouse-pilot/internal/i18n"
)

// GUI 结构体用于存储GUI相关的状态和组件
type GUI struct {
	coordinator *app.App
	shortcuts   []hotkey.Shortcut
	cfgPath     string
	cfg         config.Config

	window        fyne.Window
	statusLabel   *widget.Label
	eventsLabel   *widget.Label
	recordButton  *widget.Button
	nameEntry     *widget.Entry
	repeatEntry   *widget.Entry
	intervalEntry *widget.Entry
	macroBox      *fyne.Container
}

// RunGUI starts the graphical user interface and blocks until the window
// closes.
func RunGUI(coordinator *app.App, shortcuts []hotkey.Shortcut, cfgPath string, cfg config.Config) {
	a := fyneapp.New()
	a.Settings().SetTheme(theme.DefaultTheme())
	w := a.NewWindow(i18n.T("app_title"))
	w.Resize(fyne.NewSize(560, 640))

	g := &GUI{
		coordinator: coordinator,
		shortcuts:   shortcuts,
		cfgPath:     cfgPath,
		cfg:         cfg,
		window:      w,
	}

	g.statusLabel = widget.NewLabel(i18n.T("status_idle"))
	g.eventsLabel = widget.NewLabel(i18n.Tf("events_recorded", 0))

	w.SetContent(container.NewBorder(
		g.createToolbar(),
		g.statusLabel,
		nil, nil,
		container.NewVBox(
			g.createRecordGroup(),
			g.createPlayGroup(),
			g.createMacroGroup(),
		),
	))

	go g.refreshLoop()

	w.ShowAndRun()
}

// createToolbar creates the toolbar
func (g *GUI) createToolbar() fyne.CanvasObject {
	helpButton := widget.NewButtonWithIcon(i18n.T("help"), theme.HelpIcon(), func() {
		g.showShortcutHelp()
	})

	return container.NewHBox(
		helpButton,
		g.createLanguageSelector(),
	)
}

// createRecordGroup creates the recording controls
func (g *GUI) createRecordGroup() fyne.CanvasObject {
	g.recordButton = widget.NewButtonWithIcon(i18n.T("record"), theme.MediaRecordIcon(), func() {
		g.toggleRecording()
	})

	clearButton := widget.NewButton(i18n.T("clear"), func() {
		g.coordinator.ClearRecording()
	})

	delayButton := widget.NewButton(i18n.T("add_delay"), func() {
		g.showAddDelayDialog()
	})

	g.nameEntry = widget.NewEntry()
	g.nameEntry.SetPlaceHolder(i18n.T("macro_name_placeholder"))

	saveButton := widget.NewButtonWithIcon(i18n.T("save_macro"), theme.DocumentSaveIcon(), func() {
		g.saveRecording()
	})

	return widget.NewCard("", "", container.NewVBox(
		container.NewHBox(g.recordButton, clearButton, delayButton),
		container.NewBorder(nil, nil, nil, saveButton, g.nameEntry),
		g.eventsLabel,
	))
}

// createPlayGroup creates the playback controls
func (g *GUI) createPlayGroup() fyne.CanvasObject {
	g.repeatEntry = widget.NewEntry()
	g.repeatEntry.SetText("1")
	g.intervalEntry = widget.NewEntry()
	g.intervalEntry.SetText("0")

	playOnceButton := widget.NewButtonWithIcon(i18n.T("play_once"), theme.MediaPlayIcon(), func() {
		g.applyPlayOptions()
		g.coordinator.PlaySelection(1)
	})

	playButton := widget.NewButtonWithIcon(i18n.T("play_repeat"), theme.MediaSkipNextIcon(), func() {
		g.applyPlayOptions()
		g.coordinator.PlaySelection(g.coordinator.RepeatCount())
	})

	stopButton := widget.NewButtonWithIcon(i18n.T("stop_playback"), theme.MediaStopIcon(), func() {
		g.coordinator.StopPlayback()
	})

	options := container.NewGridWithColumns(4,
		widget.NewLabel(i18n.T("repeat_count")), g.repeatEntry,
		widget.NewLabel(i18n.T("interval_ms")), g.intervalEntry,
	)

	return widget.NewCard("", "", container.NewVBox(
		container.NewHBox(playOnceButton, playButton, stopButton),
		options,
	))
}

// toggleRecording flips the recording state from the record button.
func (g *GUI) toggleRecording() {
	if g.coordinator.IsRecording() {
		g.coordinator.StopRecording()
		g.recordButton.SetText(i18n.T("record"))
		g.recordButton.SetIcon(theme.MediaRecordIcon())
	} else {
		g.coordinator.BeginRecording()
		g.recordButton.SetText(i18n.T("stop_record"))
		g.recordButton.SetIcon(theme.MediaStopIcon())
	}
}

// saveRecording stores the capture buffer under the entered name.
func (g *GUI) saveRecording() {
	g.coordinator.StopRecording()
	g.recordButton.SetText(i18n.T("record"))
	g.recordButton.SetIcon(theme.MediaRecordIcon())

	name := g.nameEntry.Text
	if err := g.coordinator.SaveRecording(name); err != nil {
		g.statusLabel.SetText(i18n.Tf("save_failed", err))
		return
	}
	g.nameEntry.SetText("")
	g.statusLabel.SetText(i18n.Tf("macro_saved", name))
	g.refreshMacroList()
}

// showAddDelayDialog inserts a synthetic delay event into the recording.
func (g *GUI) showAddDelayDialog() {
	entry := widget.NewEntry()
	entry.SetText("1000")
	dialog.ShowForm(i18n.T("add_delay"), i18n.T("confirm"), i18n.T("cancel"),
		[]*widget.FormItem{widget.NewFormItem(i18n.T("delay_ms"), entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if ms, err := strconv.ParseInt(entry.Text, 10, 64); err == nil && ms > 0 {
				g.coordinator.Recorder.AddDelay(ms)
			}
		}, g.window)
}

// applyPlayOptions pushes the repeat/interval entries into the coordinator.
func (g *GUI) applyPlayOptions() {
	if n, err := strconv.Atoi(g.repeatEntry.Text); err == nil {
		g.coordinator.SetRepeatCount(n)
	}
	if ms, err := strconv.ParseInt(g.intervalEntry.Text, 10, 64); err == nil {
		g.coordinator.SetIntervalMs(ms)
	}
}

// showShortcutHelp lists the global shortcut table.
func (g *GUI) showShortcutHelp() {
	rows := container.NewVBox()
	for _, sc := range g.shortcuts {
		if sc.Scope != hotkey.ScopeGlobal {
			continue
		}
		rows.Add(container.NewHBox(
			widget.NewLabelWithStyle(sc.DisplayText(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(sc.Description),
		))
	}
	dialog.ShowCustom(i18n.T("shortcuts_help"), i18n.T("close"), rows, g.window)
}

// refreshLoop keeps the status line and event counter current.
func (g *GUI) refreshLoop() {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		g.eventsLabel.SetText(i18n.Tf("events_recorded", g.coordinator.Recorder.Count()))

		if g.coordinator.IsRecording() {
			g.statusLabel.SetText(i18n.T("recording"))
			continue
		}
		st := g.coordinator.Status()
		if !st.Active {
			g.statusLabel.SetText(i18n.T("status_idle"))
			continue
		}
		percent := 0
		if st.DurationMs > 0 {
			percent = int(time.Since(st.StartedAt).Milliseconds() * 100 / st.DurationMs)
			if percent > 100 {
				percent = 100
			}
		}
		g.statusLabel.SetText(i18n.Tf("status_playing",
			st.MacroName, st.MacroIndex, st.MacroTotal, st.RepeatIndex, st.RepeatTotal, percent))
	}
}
