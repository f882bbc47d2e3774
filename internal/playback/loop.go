// Package playback advances a preview cursor over the frame collection at a
// fixed rate, independently of the edit cursor.
package playback

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"Flipbook/internal/state"
)

// LengthFunc reports the current number of frames. The loop calls it on
// every tick, so a collection that grows or shrinks while playing is picked
// up without restarting.
type LengthFunc func() int

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the real ticker source.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithLogger sets the loop's logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// OnAdvance registers fn to run after each cursor advance, on the loop's
// goroutine. fn must not call Stop, SetFPS or Close synchronously; those wait
// for the loop goroutine to exit.
func OnAdvance(fn func(index int)) Option {
	return func(l *Loop) { l.onAdvance = fn }
}

// Loop is the Stopped/Running preview state machine.
type Loop struct {
	length    LengthFunc
	clock     Clock
	onAdvance func(int)
	log       *slog.Logger

	index atomic.Int64

	mu      sync.Mutex
	fps     int
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New returns a stopped loop over the frames counted by length.
func New(length LengthFunc, opts ...Option) *Loop {
	l := &Loop{
		length: length,
		clock:  RealClock{},
		fps:    12,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval is the tick period for fps; fps below 1 is treated as 1.
func Interval(fps int) time.Duration {
	return time.Second / time.Duration(max(fps, 1))
}

// Start enters Running at fps. With no frames it does nothing. Starting a
// running loop behaves like SetFPS.
func (l *Loop) Start(fps int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.length() == 0 {
		return
	}
	l.fps = max(fps, 1)
	l.stopLocked()
	l.startLocked()
}

// Stop enters Stopped. The cursor keeps its value. When Stop returns no
// further tick will run.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// Toggle flips between Running and Stopped at the current rate.
func (l *Loop) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		l.stopLocked()
		return
	}
	if l.length() == 0 {
		return
	}
	l.startLocked()
}

// SetFPS changes the rate. While running, the current ticker is stopped and
// its goroutine has exited before the new one is created.
func (l *Loop) SetFPS(fps int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fps = max(fps, 1)
	if fps == l.fps {
		return
	}
	l.fps = fps
	if l.running {
		l.stopLocked()
		l.startLocked()
	}
}

// FPS returns the configured rate.
func (l *Loop) FPS() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fps
}

// Running reports whether the loop is ticking.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Index returns the raw preview cursor. After the collection shrinks it may
// be past the end until the next tick; read frames through Frame.
func (l *Loop) Index() int { return int(l.index.Load()) }

// Frame returns the frame under the preview cursor, wrapping an out-of-range
// cursor.
func (l *Loop) Frame(c *state.Collection) state.Frame {
	return c.At(l.Index())
}

// Close stops the loop.
func (l *Loop) Close() { l.Stop() }

func (l *Loop) startLocked() {
	interval := Interval(l.fps)
	t := l.clock.NewTicker(interval)
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.running = true
	l.log.Debug("playback: running", "fps", l.fps, "interval", interval)
	go l.run(t, l.stop, l.done)
}

func (l *Loop) stopLocked() {
	if !l.running {
		return
	}
	close(l.stop)
	<-l.done
	l.running = false
	l.log.Debug("playback: stopped", "index", l.Index())
}

func (l *Loop) run(t Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-stop:
				return
			default:
			}
			l.advance()
		}
	}
}

// advance moves the cursor one step, wrapping modulo the current length.
// A cursor left past the end by a shrink wraps rather than clamps.
func (l *Loop) advance() {
	n := l.length()
	if n <= 0 {
		return
	}
	next := (l.Index() + 1) % n
	l.index.Store(int64(next))
	if l.onAdvance != nil {
		l.onAdvance(next)
	}
}
