package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cody-why/mouse-pilot/internal/app"
	"github.com/cody-why/mouse-pilot/internal/config"
	"github.com/cody-why/mouse-pilot/internal/device"
	"github.com/cody-why/mouse-pilot/internal/hotkey"
	"github.com/cody-why/mouse-pilot/internal/i18n"
	"github.com/cody-why/mouse-pilot/internal/player"
	"github.com/cody-why/mouse-pilot/internal/recorder"
	"github.com/cody-why/mouse-pilot/internal/store"
	"github.com/cody-why/mouse-pilot/internal/ui"
	"github.com/cody-why/mouse-pilot/pkg/utils"
)

func main() {
	// Optional .env for MOUSE_PILOT_LANG / MOUSE_PILOT_DIR
	godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	listMacros := flag.Bool("list", false, "List stored macros and exit")
	playNames := flag.String("play", "", "Comma-separated macro names to play without the GUI")
	repeat := flag.Int("repeat", 1, "Repeat count for -play")
	interval := flag.Int64("interval", 0, "Pause in milliseconds between macros for -play")

	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf(i18n.T("load_config_failed")+"\n", err)
	}
	if cfg.Language != "" {
		i18n.SetLang(cfg.Language)
	}
	if err := i18n.LoadOverrides(); err != nil {
		log.Printf("load translations: %v", err)
	}

	macroStore, err := store.NewManager(cfg.MacrosDir())
	if err != nil {
		fmt.Printf(i18n.T("open_store_failed")+"\n", err)
		os.Exit(1)
	}

	if *listMacros {
		printMacroList(macroStore)
		return
	}

	if *playNames != "" {
		if !playHeadless(cfg, macroStore, *playNames, *repeat, *interval) {
			os.Exit(1)
		}
		return
	}

	runGUIMode(cfg, path, macroStore)
}

func printMacroList(macroStore *store.Manager) {
	names := macroStore.Names()
	if len(names) == 0 {
		fmt.Println(i18n.T("no_stored_macros"))
		return
	}
	fmt.Println(i18n.T("stored_macros"))
	for _, name := range names {
		fmt.Println("  " + name)
	}
}

// playHeadless replays stored macros to completion without the GUI.
// Ctrl+C cancels within one wait slice.
func playHeadless(cfg config.Config, macroStore *store.Manager, namesArg string, repeat int, intervalMs int64) bool {
	var names []string
	for _, name := range strings.Split(namesArg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	for _, name := range names {
		if !macroStore.Exists(name) {
			fmt.Printf(i18n.T("macro_not_found")+"\n", name)
			return false
		}
	}
	macros := macroStore.Get(names)
	if len(macros) == 0 {
		fmt.Println(i18n.T("no_macros_selected"))
		return false
	}

	p := player.New(macros, intervalMs, device.Robot{})
	if ms := cfg.Playback.WaitSliceMs; ms > 0 {
		p.SetWaitSlice(time.Duration(ms) * time.Millisecond)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		select {
		case <-interrupt:
			p.Stop()
			fmt.Println(i18n.T("playback_stopped"))
		case <-stopped:
		}
	}()

	// Progress: announce each macro as its status is published.
	go func() {
		var last player.Status
		for {
			select {
			case <-stopped:
				return
			case <-time.After(200 * time.Millisecond):
			}
			st := p.Status()
			if st.Active && (st.MacroName != last.MacroName || st.RepeatIndex != last.RepeatIndex || st.MacroIndex != last.MacroIndex) {
				fmt.Printf(i18n.T("playing_macro")+"\n", st.MacroName, st.MacroIndex, st.MacroTotal, st.RepeatIndex, st.RepeatTotal)
				last = st
			}
		}
	}()

	p.Start(repeat)
	p.Wait()
	close(stopped)
	fmt.Println(i18n.T("playback_complete"))
	return true
}

func runGUIMode(cfg config.Config, cfgPath string, macroStore *store.Manager) {
	monitor := device.NewMonitor()
	if err := monitor.Start(); err != nil {
		fmt.Printf(i18n.T("monitor_start_failed")+"\n", err)
		if utils.GetCurrentOS() == "macos" {
			fmt.Println(i18n.T("accessibility_hint"))
		}
		os.Exit(1)
	}
	defer monitor.Stop()

	shortcuts := cfg.ShortcutTable()

	rec := recorder.New(monitor, shortcuts,
		time.Duration(cfg.Capture.PollIntervalMs)*time.Millisecond,
		cfg.Capture.MinMoveDistance)

	coordinator := app.New(cfg, macroStore, rec, device.Robot{})
	coordinator.EnableFeedback()

	dispatcher := hotkey.NewDispatcher(monitor, shortcuts,
		time.Duration(cfg.Hotkey.PollIntervalMs)*time.Millisecond)
	dispatcher.Start()
	go coordinator.Run(dispatcher.Actions())

	ui.RunGUI(coordinator, shortcuts, cfgPath, cfg)

	coordinator.StopAll()
	dispatcher.Stop()
}
