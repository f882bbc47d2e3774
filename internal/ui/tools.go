package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Flipbook/internal/config"
	"Flipbook/internal/session"
	"Flipbook/internal/state"
)

var palette = []color.NRGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 200, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// swatch is a tappable palette entry. Its outline thickens while its color
// is the brush color.
type swatch struct {
	widget.BaseWidget
	color   color.NRGBA
	pick    func(color.NRGBA)
	outline *canvas.Rectangle
}

func newSwatch(c color.NRGBA, pick func(color.NRGBA)) *swatch {
	sw := &swatch{color: c, pick: pick, outline: canvas.NewRectangle(color.Transparent)}
	sw.outline.StrokeColor = color.Gray{Y: 150}
	sw.outline.StrokeWidth = 1
	sw.ExtendBaseWidget(sw)
	return sw
}

func (sw *swatch) CreateRenderer() fyne.WidgetRenderer {
	fill := canvas.NewRectangle(sw.color)
	fill.SetMinSize(fyne.NewSize(28, 28))
	return widget.NewSimpleRenderer(container.NewStack(fill, sw.outline))
}

func (sw *swatch) Tapped(*fyne.PointEvent) {
	if sw.pick != nil {
		sw.pick(sw.color)
	}
}

func (sw *swatch) mark(current color.Color) {
	if state.ColorHex(current) == state.ColorHex(sw.color) {
		sw.outline.StrokeColor = theme.Color(theme.ColorNamePrimary)
		sw.outline.StrokeWidth = 3
	} else {
		sw.outline.StrokeColor = color.Gray{Y: 150}
		sw.outline.StrokeWidth = 1
	}
	sw.outline.Refresh()
}

// NewToolbar builds the brush/eraser toggle, color picker, size slider and
// clear button.
func NewToolbar(s *session.Session, board *BoardWidget, cfg config.BrushConfig) fyne.CanvasObject {
	mode := widget.NewLabel("Brush")
	setBrush := func(change func(*state.Brush)) {
		b := s.Brush()
		change(&b)
		s.SetBrush(b.Clamp(cfg.MinSize, cfg.MaxSize))
		if b.Erase {
			mode.SetText("Eraser")
		} else {
			mode.SetText("Brush")
		}
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			setBrush(func(b *state.Brush) { b.Erase = false })
		}), // Brush
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() {
			setBrush(func(b *state.Brush) { b.Erase = true })
		}), // Eraser
	)

	// --- Color ---
	hex := widget.NewEntry()
	hex.SetText(state.ColorHex(s.Brush().Color))
	var swatches []*swatch
	onColor := func(c color.NRGBA) {
		setBrush(func(b *state.Brush) {
			b.Color = c
			b.Erase = false
		})
		hex.SetText(state.ColorHex(c))
		for _, sw := range swatches {
			sw.mark(c)
		}
	}
	hex.OnSubmitted = func(text string) {
		c, err := state.ParseColor(text)
		if err != nil {
			hex.SetText(state.ColorHex(s.Brush().Color))
			return
		}
		onColor(c)
	}
	swatchBox := container.NewHBox()
	for _, c := range palette {
		sw := newSwatch(c, onColor)
		sw.mark(s.Brush().Color)
		swatches = append(swatches, sw)
		swatchBox.Add(sw)
	}
	hexBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(90, 35)), hex)

	// --- Size ---
	sizeLabel := widget.NewLabel(fmt.Sprintf("%d px", s.Brush().Size))
	sizeSlider := widget.NewSlider(float64(cfg.MinSize), float64(cfg.MaxSize))
	sizeSlider.Step = 1
	sizeSlider.SetValue(float64(s.Brush().Size))
	sizeSlider.OnChanged = func(v float64) {
		setBrush(func(b *state.Brush) { b.Size = int(v) })
		sizeLabel.SetText(fmt.Sprintf("%d px", int(v)))
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), sizeSlider)

	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() {
		s.Clear()
		board.Redraw()
	})

	return container.NewHBox(
		tb,
		mode,
		widget.NewSeparator(),
		swatchBox,
		hexBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		sizeLabel,
		layout.NewSpacer(),
		clearBtn,
	)
}
