package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"Flipbook/internal/input"
	"Flipbook/internal/session"
	"Flipbook/internal/state"
)

// BoardWidget shows the drawing surface and feeds mouse and touch input to
// the session.
type BoardWidget struct {
	widget.BaseWidget

	session *session.Session
	surface *canvas.Image
	onion   *canvas.Image

	touching bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(s *session.Session) *BoardWidget {
	b := &BoardWidget{session: s}

	b.surface = canvas.NewImageFromImage(s.Image())
	b.surface.FillMode = canvas.ImageFillContain

	b.onion = canvas.NewImageFromImage(image.NewRGBA(s.Bounds()))
	b.onion.FillMode = canvas.ImageFillContain

	b.ExtendBaseWidget(b)
	return b
}

// viewport is where the contained image sits inside the widget.
func (b *BoardWidget) viewport() input.Viewport {
	r := b.session.Bounds()
	return containViewport(b.Size(), r.Dx(), r.Dy())
}

// containViewport fits a bw×bh buffer inside size, centred, keeping aspect.
func containViewport(size fyne.Size, bw, bh int) input.Viewport {
	vp := input.Viewport{BufferWidth: bw, BufferHeight: bh}
	if bw <= 0 || bh <= 0 || size.Width <= 0 || size.Height <= 0 {
		return vp
	}
	scale := min(float64(size.Width)/float64(bw), float64(size.Height)/float64(bh))
	vp.Width = float64(bw) * scale
	vp.Height = float64(bh) * scale
	vp.Left = (float64(size.Width) - vp.Width) / 2
	vp.Top = (float64(size.Height) - vp.Height) / 2
	return vp
}

func (b *BoardWidget) pointer(pos fyne.Position) input.Event {
	if b.touching {
		return input.TouchAt(state.Point{X: float64(pos.X), Y: float64(pos.Y)})
	}
	return input.PointerAt(float64(pos.X), float64(pos.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.PointerDown(b.pointer(e.Position), b.viewport())
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.endStroke()
	}
}

// Dragged extends the stroke. Because the board is Draggable the drag is not
// passed on to an enclosing scroller, which is how fyne keeps touch strokes
// from scrolling the window.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.session.PointerMove(b.pointer(e.Position), b.viewport())
	b.Redraw()
}

func (b *BoardWidget) DragEnd() { b.endStroke() }

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.touching = true
	b.session.PointerDown(b.pointer(e.Position), b.viewport())
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent)     { b.endStroke() }
func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) { b.endStroke() }

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut() {
	b.session.PointerLeave()
	b.touching = false
}

func (b *BoardWidget) endStroke() {
	b.session.PointerUp()
	b.touching = false
	b.Redraw()
}

// Redraw copies the surface (and onion skin) into the displayed images.
func (b *BoardWidget) Redraw() {
	b.surface.Image = b.session.Image()
	b.surface.Refresh()

	if img, ok := b.session.OnionSkin(); ok {
		b.onion.Image = img
		b.onion.Show()
	} else {
		b.onion.Hide()
	}
	b.onion.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.White)
	return widget.NewSimpleRenderer(container.NewStack(background, b.onion, b.surface))
}

func (b *BoardWidget) MinSize() fyne.Size {
	r := b.session.Bounds()
	return fyne.NewSize(float32(r.Dx())/2, float32(r.Dy())/2)
}
