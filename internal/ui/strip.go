package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Flipbook/internal/session"
	"Flipbook/internal/state"
)

var (
	thumbSize      = fyne.NewSize(96, 54)
	selectedBorder = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	plainBorder    = color.Gray{Y: 200}
)

// frameThumb is a tappable frame thumbnail.
type frameThumb struct {
	widget.BaseWidget
	index    int
	selected bool
	img      *canvas.Image
	OnTapped func(index int)
}

func newFrameThumb(index int, selected bool, img *canvas.Image, tapped func(int)) *frameThumb {
	t := &frameThumb{index: index, selected: selected, img: img, OnTapped: tapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *frameThumb) CreateRenderer() fyne.WidgetRenderer {
	t.img.FillMode = canvas.ImageFillContain
	t.img.SetMinSize(thumbSize)

	border := canvas.NewRectangle(color.White)
	border.StrokeWidth = 2
	border.StrokeColor = plainBorder
	if t.selected {
		border.StrokeColor = selectedBorder
		border.StrokeWidth = 3
	}
	number := canvas.NewText(fmt.Sprint(t.index+1), color.Gray{Y: 90})
	number.TextSize = 10

	return widget.NewSimpleRenderer(container.NewStack(
		border,
		container.NewPadded(t.img),
		container.NewVBox(container.NewHBox(number)),
	))
}

func (t *frameThumb) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped(t.index)
	}
}

// FrameStrip lists the frames with select, add, duplicate and delete.
type FrameStrip struct {
	session *session.Session
	images  *frameImages
	frames  *fyne.Container
	scroll  *container.Scroll

	shown uint64 // revision currently displayed
}

func NewFrameStrip(s *session.Session, images *frameImages) *FrameStrip {
	fs := &FrameStrip{session: s, images: images}
	fs.frames = container.NewHBox()
	fs.scroll = container.NewHScroll(fs.frames)
	fs.scroll.SetMinSize(fyne.NewSize(thumbSize.Width*4, thumbSize.Height+60))
	return fs
}

// Object returns the strip with its add and duplicate buttons.
func (fs *FrameStrip) Object() fyne.CanvasObject {
	add := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), fs.session.AddFrame)
	duplicate := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), fs.session.DuplicateFrame)
	return container.NewBorder(nil, nil, nil, container.NewVBox(add, duplicate), fs.scroll)
}

// Update rebuilds the thumbnails if c is newer than what is shown.
func (fs *FrameStrip) Update(c *state.Collection) {
	if c.Revision() == fs.shown {
		return
	}
	fs.shown = c.Revision()

	objects := make([]fyne.CanvasObject, 0, c.Len())
	for i, f := range c.Frames() {
		img := canvas.NewImageFromImage(fs.images.get(f))
		thumb := newFrameThumb(i, i == c.Index(), img, fs.session.Select)

		cell := []fyne.CanvasObject{thumb}
		if c.Len() > 1 {
			index := i
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				fs.session.Delete(index)
			})
			del.Importance = widget.LowImportance
			cell = append(cell, del)
		}
		objects = append(objects, container.NewVBox(cell...))
	}
	fs.frames.Objects = objects
	fs.frames.Refresh()
}
