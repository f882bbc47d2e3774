package raster

import (
	"image"
	"math"

	"Flipbook/internal/state"
)

// Region is the area a stroke has touched, in buffer pixels.
type Region struct {
	image.Rectangle
}

// segmentRegion is the bounding box of the segment a→b, padded by the brush
// radius plus one pixel of antialiasing, clipped to bounds.
func segmentRegion(a, b state.Point, width int, bounds image.Rectangle) Region {
	pad := float64(width)/2 + 1

	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)

	r := image.Rect(
		int(math.Floor(minX-pad)),
		int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)),
		int(math.Ceil(maxY+pad)),
	)
	return Region{r.Intersect(bounds)}
}

// Merge grows r to cover o.
func (r Region) Merge(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Region{r.Union(o.Rectangle)}
}
