package state

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Point is a position in buffer-space pixels.
type Point struct{ X, Y float64 }

// Brush is the paint configuration applied to each stroke segment.
type Brush struct {
	Color color.Color
	Size  int  // stroke width in pixels
	Erase bool // remove pixels instead of painting
}

// DefaultBrush matches the toolbar's initial state.
func DefaultBrush() Brush {
	return Brush{Color: color.NRGBA{A: 255}, Size: 5}
}

// Clamp bounds the brush size to [lo, hi] and fills in a missing color.
func (b Brush) Clamp(lo, hi int) Brush {
	if b.Size < lo {
		b.Size = lo
	}
	if hi >= lo && b.Size > hi {
		b.Size = hi
	}
	if b.Color == nil {
		b.Color = color.NRGBA{A: 255}
	}
	return b
}

// ParseColor accepts "#rgb", "#rrggbb" or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("state: empty color")
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("state: parse color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ColorHex formats c as "#rrggbb", ignoring alpha.
func ColorHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
