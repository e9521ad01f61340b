// Package ui is the Fyne presentation layer of the slideshow: window
// management, texture upload and layout painting. All slideshow logic
// lives in the controller; this package only renders its output and
// re-invokes its tick on a fixed cadence.
package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"artslide/internal/slideshow"
)

// tickInterval bounds how stale the timer check can get. The ticker
// repaints at least this often regardless of image readiness.
const tickInterval = 100 * time.Millisecond

// App represents the slideshow application window and its widgets.
type App struct {
	app  fyne.App
	win  fyne.Window
	ctrl *slideshow.Controller

	backdrop  *canvas.Image
	main      *canvas.Image
	titleText *canvas.Text
	yearText  *canvas.Text

	quit chan struct{}
}

// CreateApplication builds the fullscreen window around the controller
// and runs the event loop until the window closes.
func CreateApplication(ctrl *slideshow.Controller) {
	a := &App{
		app:  app.NewWithID("io.github.artslide"),
		ctrl: ctrl,
		quit: make(chan struct{}),
	}
	a.win = a.app.NewWindow("Art Slideshow")
	a.win.SetMaster()

	a.win.SetContent(a.buildContent())
	a.buildKeyboardShortcuts()
	a.win.SetOnClosed(func() {
		close(a.quit)
	})

	go a.tickLoop()

	a.win.CenterOnScreen()
	a.win.SetFullScreen(true)
	a.win.ShowAndRun()
}

// buildContent assembles the layered composition: full-bleed backdrop,
// centered contain-fit main image, caption panel in the lower left.
func (a *App) buildContent() fyne.CanvasObject {
	if a.ctrl.Count() == 0 {
		return container.NewCenter(widget.NewLabel("No images found in folder."))
	}

	a.backdrop = &canvas.Image{}
	a.backdrop.FillMode = canvas.ImageFillStretch

	a.main = &canvas.Image{}
	a.main.FillMode = canvas.ImageFillContain

	a.titleText = canvas.NewText("", color.White)
	a.titleText.TextSize = 26
	a.yearText = canvas.NewText("", color.NRGBA{R: 220, G: 220, B: 220, A: 255})
	a.yearText.TextSize = 22

	captionBG := canvas.NewRectangle(color.NRGBA{A: 200})
	captionBG.CornerRadius = 8
	panel := container.NewStack(
		captionBG,
		container.NewPadded(container.NewVBox(a.titleText, a.yearText)),
	)
	captionRow := container.NewPadded(container.NewHBox(panel, layout.NewSpacer()))

	return container.NewStack(
		a.backdrop,
		a.main,
		container.NewBorder(nil, captionRow, nil, nil),
	)
}

// tickLoop drives the controller from a ticker goroutine. All widget
// mutation goes through fyne.Do onto the main thread.
func (a *App) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
			fyne.Do(func() {
				if a.ctrl.Tick(time.Now()) {
					a.refresh()
				}
			})
		}
	}
}

// refresh uploads the current processed buffers into the canvases.
// Only called when the displayed artwork changed; the buffers are
// finalized and immutable by the time they get here.
func (a *App) refresh() {
	res := a.ctrl.Current()
	if res == nil {
		return
	}
	a.backdrop.Image = res.Backdrop
	a.main.Image = res.Main
	a.titleText.Text = fmt.Sprintf("%s - %s", res.Meta.Title, res.Meta.Artist)
	a.yearText.Text = res.Meta.Year
	a.backdrop.Refresh()
	a.main.Refresh()
	a.titleText.Refresh()
	a.yearText.Refresh()
}
