package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"Flipbook/internal/state"
)

// OnionSkin renders f faded to opacity (0..1), scaled to bounds, for display
// beneath the drawing surface.
func OnionSkin(f state.Frame, bounds image.Rectangle, opacity float64) (*image.RGBA, error) {
	img, err := DecodeFrame(f)
	if err != nil {
		return nil, err
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	scaled := image.NewRGBA(bounds)
	draw.CatmullRom.Scale(scaled, bounds, img, img.Bounds(), draw.Src, nil)

	out := image.NewRGBA(bounds)
	fade := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, bounds, scaled, bounds.Min, fade, image.Point{}, draw.Over)
	return out, nil
}
