// Package raster owns the single-layer pixel buffer strokes are painted into,
// and the encoding of that buffer to and from frames.
package raster

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"Flipbook/internal/state"
)

var (
	ErrNotReady = errors.New("raster: surface not ready")
	ErrNoStroke = errors.New("raster: no stroke in progress")
	ErrClosed   = errors.New("raster: surface closed")
	ErrBadFrame = errors.New("raster: malformed frame")
)

// blank is the fill of a cleared frame.
var blank = image.NewUniform(color.White)

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for stroke and load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// Surface is a fixed-size RGBA buffer with stroke painting.
//
// Strokes are rasterised one segment at a time into a coverage mask, which is
// then composited onto the buffer: source-over for paint, destination-out for
// erase.
type Surface struct {
	mu sync.Mutex

	buf     *image.RGBA
	mask    *image.Alpha
	stroker *rasterx.Stroker

	stroking bool
	last     state.Point
	damage   Region

	gen     uint64 // bumped by Load and Clear; older decodes are dropped
	loading bool
	closed  bool

	log *slog.Logger
}

// New returns a transparent surface of the given size.
func New(width, height int, opts ...Option) *Surface {
	bounds := image.Rect(0, 0, width, height)
	s := &Surface{
		buf:  image.NewRGBA(bounds),
		mask: image.NewAlpha(bounds),
		log:  slog.Default(),
	}
	scanner := rasterx.NewScannerGV(width, height, s.mask, bounds)
	s.stroker = rasterx.NewStroker(width, height, scanner)
	s.stroker.SetColor(color.Opaque)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bounds returns the buffer rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.buf.Bounds() }

// Ready reports whether a stroke may begin: no load pending, not closed.
func (s *Surface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && !s.closed
}

// Stroking reports whether a stroke is open.
func (s *Surface) Stroking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stroking
}

// BeginStroke opens a stroke at p.
func (s *Surface) BeginStroke(p state.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.loading {
		return ErrNotReady
	}
	s.stroking = true
	s.last = p
	s.damage = Region{}
	return nil
}

// ExtendStroke paints a segment from the previous point to p.
func (s *Surface) ExtendStroke(p state.Point, brush state.Brush) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if !s.stroking {
		return ErrNoStroke
	}
	from := s.last
	s.last = p
	if from == p {
		return nil
	}

	width := max(brush.Size, 1)
	r := segmentRegion(from, p, width, s.buf.Bounds())
	if r.Empty() {
		return nil
	}

	s.rasterize(from, p, width)
	if brush.Erase {
		s.eraseMasked(r.Rectangle)
	} else {
		c := brush.Color
		if c == nil {
			c = color.Black
		}
		draw.DrawMask(s.buf, r.Rectangle, image.NewUniform(c), image.Point{}, s.mask, r.Min, draw.Over)
	}
	draw.Draw(s.mask, r.Rectangle, image.Transparent, image.Point{}, draw.Src)

	s.damage = s.damage.Merge(r)
	return nil
}

// EndStroke closes the stroke and starts encoding the buffer as it is now.
func (s *Surface) EndStroke() (*Encoding, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if !s.stroking {
		s.mu.Unlock()
		return nil, ErrNoStroke
	}
	s.stroking = false
	snap := s.copyLocked()
	damage := s.damage
	s.mu.Unlock()

	s.log.Debug("raster: stroke ended", "damage", damage.String())
	return encodeAsync(snap), nil
}

// Clear fills the buffer with opaque white and starts encoding it. Any
// pending load is abandoned.
func (s *Surface) Clear() *Encoding {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedEncoding(ErrClosed)
	}
	s.gen++
	s.loading = false
	draw.Draw(s.buf, s.buf.Bounds(), blank, image.Point{}, draw.Src)
	snap := s.copyLocked()
	s.mu.Unlock()

	return encodeAsync(snap)
}

// Load decodes f off the caller's goroutine and replaces the whole buffer
// with it, scaled to the surface size. The surface is not Ready until the
// decode finishes. A later Load or Clear supersedes this one, and a decode
// finishing after Close changes nothing. A malformed frame leaves the buffer
// as it was.
func (s *Surface) Load(f state.Frame) *Loading {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return failedLoading(ErrClosed)
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.stroking = false
	s.mu.Unlock()

	l := &Loading{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		img, err := DecodeFrame(f)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			l.err = ErrClosed
			return
		}
		if gen != s.gen {
			return
		}
		s.loading = false
		if err != nil {
			s.log.Warn("raster: load frame", "error", err)
			l.err = err
			return
		}
		s.replaceLocked(img)
		l.applied = true
	}()
	return l
}

// Image returns a copy of the buffer.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Close makes every later call, and every decode still in flight, a no-op.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stroking = false
	s.loading = false
}

func (s *Surface) rasterize(a, b state.Point, width int) {
	s.stroker.Clear()
	s.stroker.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	s.stroker.Start(toFixed(a))
	s.stroker.Line(toFixed(b))
	s.stroker.Stop(false)
	s.stroker.Draw()
}

// eraseMasked scales every channel of the premultiplied buffer by the
// inverse mask coverage inside r.
func (s *Surface) eraseMasked(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := s.mask.PixOffset(r.Min.X, y)
		bi := s.buf.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, mi, bi = x+1, mi+1, bi+4 {
			m := s.mask.Pix[mi]
			if m == 0 {
				continue
			}
			keep := uint32(255 - m)
			px := s.buf.Pix[bi : bi+4 : bi+4]
			for c := range px {
				px[c] = uint8((uint32(px[c])*keep + 127) / 255)
			}
		}
	}
}

func (s *Surface) replaceLocked(img image.Image) {
	b := s.buf.Bounds()
	if img.Bounds().Size() == b.Size() {
		draw.Draw(s.buf, b, img, img.Bounds().Min, draw.Src)
		return
	}
	draw.CatmullRom.Scale(s.buf, b, img, img.Bounds(), draw.Src, nil)
}

func (s *Surface) copyLocked() *image.RGBA {
	out := image.NewRGBA(s.buf.Bounds())
	copy(out.Pix, s.buf.Pix)
	return out
}

func toFixed(p state.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}
