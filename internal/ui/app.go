package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"Flipbook/internal/config"
	"Flipbook/internal/playback"
	"Flipbook/internal/session"
	"Flipbook/internal/state"
)

// RunApp opens the editor window for s and blocks until it is closed.
func RunApp(cfg *config.Config, s *session.Session, log *slog.Logger) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Animation Studio")
	myWindow.Resize(fyne.NewSize(1200, 800))

	images := newFrameImages(log)

	var controls *PlaybackControls
	loop := playback.New(s.Len,
		playback.WithLogger(log),
		playback.OnAdvance(func(int) {
			fyne.Do(func() { controls.ShowFrame() })
		}),
	)
	loop.SetFPS(cfg.Playback.FPS)

	board := NewBoardWidget(s)
	toolbar := NewToolbar(s, board, cfg.Brush)
	strip := NewFrameStrip(s, images)
	controls = NewPlaybackControls(s, loop, images, cfg.Playback)

	s.OnChange(func(c *state.Collection) {
		fyne.Do(func() {
			images.prune(c)
			strip.Update(c)
			board.Redraw()
			if !loop.Running() {
				controls.ShowFrame()
			}
		})
	})
	strip.Update(s.Frames())

	// Set up the main layout
	side := container.NewVBox(
		widget.NewLabelWithStyle("Animation Studio", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		controls.Object(),
	)
	workspace := container.NewBorder(nil, nil, side, nil, board)
	content := container.NewBorder(toolbar, strip.Object(), nil, nil, workspace)

	myWindow.SetOnClosed(func() {
		loop.Close()
		s.Close()
	})
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
