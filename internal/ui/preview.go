package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Flipbook/internal/config"
	"Flipbook/internal/playback"
	"Flipbook/internal/session"
)

// PlaybackControls shows the preview image, a play/pause button and the
// frame-rate slider.
type PlaybackControls struct {
	session *session.Session
	loop    *playback.Loop
	images  *frameImages

	preview *canvas.Image
	play    *widget.Button
	rate    *widget.Label
	slider  *widget.Slider
}

func NewPlaybackControls(s *session.Session, loop *playback.Loop, images *frameImages, cfg config.PlaybackConfig) *PlaybackControls {
	pc := &PlaybackControls{session: s, loop: loop, images: images}

	r := s.Bounds()
	pc.preview = canvas.NewImageFromImage(image.NewRGBA(r))
	pc.preview.FillMode = canvas.ImageFillContain
	pc.preview.SetMinSize(fyne.NewSize(float32(r.Dx())/3, float32(r.Dy())/3))

	pc.play = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), pc.toggle)
	pc.rate = widget.NewLabel("")

	pc.slider = widget.NewSlider(float64(cfg.MinFPS), float64(cfg.MaxFPS))
	pc.slider.Step = 1
	pc.slider.SetValue(float64(loop.FPS()))
	pc.slider.OnChanged = func(v float64) {
		pc.loop.SetFPS(int(v))
		pc.updateRate()
	}
	pc.updateRate()
	pc.ShowFrame()
	return pc
}

func (pc *PlaybackControls) Object() fyne.CanvasObject {
	speed := container.NewBorder(nil, nil, widget.NewLabel("Speed"), pc.rate, pc.slider)
	return container.NewVBox(
		widget.NewLabelWithStyle("Preview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		pc.preview,
		container.NewHBox(pc.play, layout.NewSpacer()),
		speed,
	)
}

func (pc *PlaybackControls) toggle() {
	pc.loop.Toggle()
	if pc.loop.Running() {
		pc.play.SetIcon(theme.MediaPauseIcon())
	} else {
		pc.play.SetIcon(theme.MediaPlayIcon())
	}
}

func (pc *PlaybackControls) updateRate() {
	pc.rate.SetText(fmt.Sprintf("%d FPS", pc.loop.FPS()))
}

// ShowFrame displays the frame under the playback cursor.
func (pc *PlaybackControls) ShowFrame() {
	img := pc.images.get(pc.loop.Frame(pc.session.Frames()))
	if img == nil {
		return
	}
	pc.preview.Image = img
	pc.preview.Refresh()
}
