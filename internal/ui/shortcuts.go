// Package ui  Shortcuts for keyboard actions
package ui

import (
	"time"

	"fyne.io/fyne/v2"
)

func (a *App) buildKeyboardShortcuts() {
	a.win.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		// advance to the next artwork; like the timed advance this is
		// gated on the prefetch being ready
		case fyne.KeyRight, fyne.KeySpace:
			if a.ctrl.Advance(time.Now()) {
				a.refresh()
			}
		case fyne.KeyP:
			a.ctrl.TogglePlayPause()
		case fyne.KeyQ, fyne.KeyEscape:
			a.app.Quit()
		}
	})
}
