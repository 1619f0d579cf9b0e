package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cody-why/mouse-pilot/internal/i18n"
)

// createMacroGroup creates the stored-macro list with selection checkboxes.
func (g *GUI) createMacroGroup() fyne.CanvasObject {
	g.macroBox = container.NewVBox()
	g.refreshMacroList()

	scroll := container.NewVScroll(g.macroBox)
	scroll.SetMinSize(fyne.NewSize(0, 220))

	return widget.NewCard(i18n.T("macros"), "", scroll)
}

// refreshMacroList rebuilds the macro rows from the store.
func (g *GUI) refreshMacroList() {
	g.macroBox.RemoveAll()

	selected := make(map[string]bool)
	for _, name := range g.coordinator.Selected() {
		selected[name] = true
	}

	for _, name := range g.coordinator.Store.Names() {
		macroName := name

		check := widget.NewCheck(macroName, func(on bool) {
			g.coordinator.ToggleSelected(macroName, on)
		})
		check.SetChecked(selected[macroName])

		renameButton := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
			g.showRenameDialog(macroName)
		})
		deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			g.showDeleteDialog(macroName)
		})

		g.macroBox.Add(container.NewHBox(check, layout.NewSpacer(), renameButton, deleteButton))
	}
	g.macroBox.Refresh()
}

// showRenameDialog renames a stored macro.
func (g *GUI) showRenameDialog(name string) {
	entry := widget.NewEntry()
	entry.SetText(name)
	dialog.ShowForm(i18n.T("rename"), i18n.T("confirm"), i18n.T("cancel"),
		[]*widget.FormItem{widget.NewFormItem(i18n.T("new_name"), entry)},
		func(ok bool) {
			if !ok || entry.Text == "" || entry.Text == name {
				return
			}
			if err := g.coordinator.Store.Rename(name, entry.Text); err != nil {
				g.statusLabel.SetText(i18n.Tf("rename_failed", err))
				return
			}
			g.coordinator.ToggleSelected(name, false)
			g.statusLabel.SetText(i18n.Tf("macro_renamed", entry.Text))
			g.refreshMacroList()
		}, g.window)
}

// showDeleteDialog deletes a stored macro after confirmation.
func (g *GUI) showDeleteDialog(name string) {
	dialog.ShowConfirm(i18n.T("delete"), i18n.Tf("delete_macro_ask", name), func(ok bool) {
		if !ok {
			return
		}
		if err := g.coordinator.Store.Delete(name); err != nil {
			g.statusLabel.SetText(i18n.Tf("delete_failed", err))
			return
		}
		g.coordinator.ToggleSelected(name, false)
		g.statusLabel.SetText(i18n.Tf("macro_deleted", name))
		g.refreshMacroList()
	}, g.window)
}
