// Package session wires input, the raster surface and the frame collection
// together and owns the rule for when a stroke lands in a frame.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"Flipbook/internal/input"
	"Flipbook/internal/raster"
	"Flipbook/internal/state"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the base logger; the session adds its id to every record.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBrush sets the initial brush.
func WithBrush(b state.Brush) Option {
	return func(s *Session) { s.brush = b }
}

// WithOnionSkin shows the previous frame at opacity beneath the surface.
func WithOnionSkin(opacity float64) Option {
	return func(s *Session) {
		s.onion = true
		s.onionOpacity = opacity
	}
}

// Session is one editing session over one frame collection.
//
// Pointer methods and the frame operations (Select, AddFrame, Delete, ...)
// are meant to be called from a single goroutine, the UI event loop. Commits
// and loads complete on background goroutines; the collection they publish is
// read lock-free through Frames.
type Session struct {
	id  string
	log *slog.Logger

	surface *raster.Surface
	tracker input.Tracker

	mu     sync.Mutex // serialises collection writers
	frames atomic.Pointer[state.Collection]

	brushMu sync.RWMutex
	brush   state.Brush

	onion        bool
	onionOpacity float64

	commits    sync.WaitGroup
	commitMu   sync.Mutex
	lastCommit chan struct{} // closed once the newest queued commit has landed
	loading    atomic.Pointer[raster.Loading]

	onionMu  sync.Mutex
	onionSrc state.Frame
	onionImg *image.RGBA

	listenMu  sync.Mutex
	listeners []func(*state.Collection)

	closed atomic.Bool
}

// New starts a session with one blank white frame of the given size.
func New(width, height int, opts ...Option) (*Session, error) {
	s := &Session{
		id:    state.NewSessionID(),
		log:   slog.Default(),
		brush: state.DefaultBrush(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.id)
	s.surface = raster.New(width, height, raster.WithLogger(s.log))

	blank, err := s.surface.Clear().Wait()
	if err != nil {
		return nil, fmt.Errorf("session: blank frame: %w", err)
	}
	s.frames.Store(state.NewCollection(blank))
	s.log.Info("session: started", "width", width, "height", height)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Frames returns the current collection.
func (s *Session) Frames() *state.Collection { return s.frames.Load() }

// Len returns the number of frames. It matches playback.LengthFunc.
func (s *Session) Len() int { return s.Frames().Len() }

// Image returns a copy of the drawing surface.
func (s *Session) Image() *image.RGBA { return s.surface.Image() }

// Bounds returns the canvas rectangle.
func (s *Session) Bounds() image.Rectangle { return s.surface.Bounds() }

// Brush returns the brush applied to the next segment.
func (s *Session) Brush() state.Brush {
	s.brushMu.RLock()
	defer s.brushMu.RUnlock()
	return s.brush
}

// SetBrush replaces the brush. Segments already painted keep their look.
func (s *Session) SetBrush(b state.Brush) {
	s.brushMu.Lock()
	s.brush = b
	s.brushMu.Unlock()
}

// OnChange registers fn to receive the collection after every commit,
// structural change and completed reload. fn may run on any goroutine.
func (s *Session) OnChange(fn func(*state.Collection)) {
	s.listenMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenMu.Unlock()
}

// PointerDown starts a stroke.
func (s *Session) PointerDown(ev input.Event, vp input.Viewport) {
	if s.closed.Load() {
		return
	}
	p, ok := s.tracker.Begin(ev, vp)
	if !ok {
		return
	}
	if err := s.surface.BeginStroke(p); err != nil {
		s.log.Debug("session: stroke not started", "error", err)
		s.tracker.End()
	}
}

// PointerMove extends the open stroke. It reports whether the platform's
// default touch gesture must be suppressed.
func (s *Session) PointerMove(ev input.Event, vp input.Viewport) bool {
	if s.closed.Load() {
		return false
	}
	m := s.tracker.Extend(ev, vp)
	if m.OK {
		if err := s.surface.ExtendStroke(m.Point, s.Brush()); err != nil {
			s.log.Debug("session: segment dropped", "error", err)
		}
	}
	return m.PreventDefault
}

// PointerUp ends the stroke and commits it.
func (s *Session) PointerUp() { s.endStroke() }

// PointerLeave ends the stroke when the pointer leaves the canvas.
func (s *Session) PointerLeave() { s.endStroke() }

// Clear whitens the current frame and commits it.
func (s *Session) Clear() {
	if s.closed.Load() {
		return
	}
	s.endStroke()
	index := s.Frames().Index()
	s.commitAsync(index, s.surface.Clear())
	s.log.Info("session: cleared", "index", index)
}

// Select opens frame i for drawing.
func (s *Session) Select(i int) {
	s.restructure("select", func(c *state.Collection) *state.Collection {
		return c.Select(i)
	})
}

// InsertAfter duplicates frame i and opens the copy.
func (s *Session) InsertAfter(i int) {
	s.restructure("insert", func(c *state.Collection) *state.Collection {
		return c.InsertAfter(i)
	})
}

// AddFrame inserts a new frame after the current one. The new frame starts
// as a copy of the current frame, exactly like DuplicateFrame.
func (s *Session) AddFrame() {
	s.restructure("add", func(c *state.Collection) *state.Collection {
		return c.InsertAfter(c.Index())
	})
}

// DuplicateFrame inserts a copy of the current frame after it.
func (s *Session) DuplicateFrame() {
	s.restructure("duplicate", func(c *state.Collection) *state.Collection {
		return c.InsertAfter(c.Index())
	})
}

// Delete removes frame i unless it is the only one.
func (s *Session) Delete(i int) {
	s.restructure("delete", func(c *state.Collection) *state.Collection {
		return c.DeleteAt(i)
	})
}

// OnionSkin returns the faded previous frame when onion skinning is on and
// the current frame has a predecessor. The image is rebuilt only when the
// previous frame changes; callers must not modify it.
func (s *Session) OnionSkin() (*image.RGBA, bool) {
	if !s.onion {
		return nil, false
	}
	c := s.Frames()
	prev, ok := c.Frame(c.Index() - 1)
	if !ok {
		return nil, false
	}

	s.onionMu.Lock()
	defer s.onionMu.Unlock()
	if s.onionImg != nil && s.onionSrc == prev {
		return s.onionImg, true
	}
	img, err := raster.OnionSkin(prev, s.surface.Bounds(), s.onionOpacity)
	if err != nil {
		s.log.Warn("session: onion skin", "error", err)
		return nil, false
	}
	s.onionSrc, s.onionImg = prev, img
	return img, true
}

// Wait blocks until pending commits and the latest reload have finished.
func (s *Session) Wait() {
	s.commits.Wait()
	if l := s.loading.Load(); l != nil {
		l.Wait()
	}
}

// Close commits any open stroke and tears the session down. Decodes still in
// flight finish without effect.
func (s *Session) Close() {
	if s.closed.Load() {
		return
	}
	s.settle()
	s.closed.Store(true)
	s.surface.Close()
	s.log.Info("session: closed", "frames", s.Len())
}

// settle ends any open stroke and waits for every commit to land, so the
// next load cannot overwrite a stroke that has not been committed yet.
func (s *Session) settle() {
	s.endStroke()
	s.commits.Wait()
}

func (s *Session) endStroke() {
	if !s.tracker.End() {
		return
	}
	// The index is captured now; the commit lands later.
	index := s.Frames().Index()
	enc, err := s.surface.EndStroke()
	if err != nil {
		s.log.Debug("session: end stroke", "error", err)
		return
	}
	s.commitAsync(index, enc)
}

// commitAsync queues enc for index. Encodes run concurrently but commits
// land in the order they were queued, so an older snapshot never replaces a
// newer one.
func (s *Session) commitAsync(index int, enc *raster.Encoding) {
	s.commitMu.Lock()
	prev := s.lastCommit
	done := make(chan struct{})
	s.lastCommit = done
	s.commitMu.Unlock()

	s.commits.Add(1)
	go func() {
		defer s.commits.Done()
		defer close(done)
		f, err := enc.Wait()
		if prev != nil {
			<-prev
		}
		if err != nil {
			if !errors.Is(err, raster.ErrClosed) {
				s.log.Warn("session: encode frame", "index", index, "error", err)
			}
			return
		}
		s.update(func(c *state.Collection) *state.Collection {
			return c.Commit(index, f)
		})
		s.log.Debug("session: committed", "index", index)
	}()
}

func (s *Session) restructure(op string, fn func(*state.Collection) *state.Collection) {
	if s.closed.Load() {
		return
	}
	s.settle()
	next, changed := s.update(fn)
	if !changed {
		s.log.Debug("session: "+op+" ignored", "frames", next.Len(), "index", next.Index())
		return
	}
	s.log.Info("session: "+op, "frames", next.Len(), "index", next.Index())
	s.reload(next)
}

func (s *Session) update(fn func(*state.Collection) *state.Collection) (*state.Collection, bool) {
	s.mu.Lock()
	old := s.frames.Load()
	next := fn(old)
	changed := next != old
	if changed {
		s.frames.Store(next)
	}
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
	return next, changed
}

func (s *Session) reload(c *state.Collection) {
	l := s.surface.Load(c.Current())
	s.loading.Store(l)
	go func() {
		applied, err := l.Wait()
		if err != nil {
			if !errors.Is(err, raster.ErrClosed) {
				s.log.Warn("session: reload frame", "index", c.Index(), "error", err)
			}
			return
		}
		if applied {
			s.notify(s.Frames())
		}
	}()
}

func (s *Session) notify(c *state.Collection) {
	if s.closed.Load() {
		return
	}
	s.listenMu.Lock()
	listeners := slices.Clone(s.listeners)
	s.listenMu.Unlock()
	for _, fn := range listeners {
		fn(c)
	}
}
