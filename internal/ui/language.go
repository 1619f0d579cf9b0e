package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cody-why/mouse-pilot/internal/config"
	"github.com/cody-why/mouse-pilot/internal/i18n"
)

// createLanguageSelector creates and returns a language selection widget
func (g *GUI) createLanguageSelector() fyne.CanvasObject {
	langSelect := widget.NewSelect(
		[]string{i18n.T("language_zh"), i18n.T("language_en")},
		func(selected string) {
			var lang string
			if selected == i18n.T("language_zh") {
				lang = i18n.LangZH
			} else {
				lang = i18n.LangEN
			}
			if lang == i18n.GetCurrentLang() {
				return
			}

			if err := i18n.SetLang(lang); err != nil {
				g.statusLabel.SetText(err.Error())
				return
			}

			// Persist the choice so the next start picks it up.
			g.cfg.Language = lang
			if err := config.Save(g.cfgPath, g.cfg); err != nil {
				g.statusLabel.SetText(err.Error())
				return
			}

			g.statusLabel.SetText(i18n.T("restart_required"))
		},
	)

	if i18n.GetCurrentLang() == i18n.LangZH {
		langSelect.SetSelected(i18n.T("language_zh"))
	} else {
		langSelect.SetSelected(i18n.T("language_en"))
	}

	return container.NewHBox(
		widget.NewLabel(i18n.T("language")),
		langSelect,
	)
}
