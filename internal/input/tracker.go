// Package input turns pointer and touch events into buffer coordinates and
// tracks whether a stroke is in progress.
package input

import "Flipbook/internal/state"

// Source tells pointer events from touch events.
type Source int

const (
	Pointer Source = iota
	Touch
)

// Event is one pointer or touch sample in display (client) coordinates.
type Event struct {
	Source  Source
	Pointer state.Point   // used when Source == Pointer
	Touches []state.Point // used when Source == Touch; only the first counts
}

// PointerAt is a pointer event at (x, y).
func PointerAt(x, y float64) Event {
	return Event{Source: Pointer, Pointer: state.Point{X: x, Y: y}}
}

// TouchAt is a touch event with the given touch points.
func TouchAt(touches ...state.Point) Event {
	return Event{Source: Touch, Touches: touches}
}

// Viewport is where the drawing surface is shown on screen, and the size of
// the buffer behind it.
type Viewport struct {
	Left, Top     float64
	Width, Height float64
	BufferWidth   int
	BufferHeight  int
}

// Map converts a client position to buffer pixels. X and Y scale
// independently. A zero-area viewport yields no coordinate.
func (v Viewport) Map(client state.Point) (state.Point, bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return state.Point{}, false
	}
	sx := float64(v.BufferWidth) / v.Width
	sy := float64(v.BufferHeight) / v.Height
	return state.Point{
		X: (client.X - v.Left) * sx,
		Y: (client.Y - v.Top) * sy,
	}, true
}

// Normalize picks the event's client position and maps it into the buffer.
func Normalize(ev Event, vp Viewport) (state.Point, bool) {
	client := ev.Pointer
	if ev.Source == Touch {
		if len(ev.Touches) == 0 {
			return state.Point{}, false
		}
		client = ev.Touches[0]
	}
	return vp.Map(client)
}

// Move is the outcome of feeding a move event to the Tracker.
type Move struct {
	Point state.Point
	OK    bool // a stroke is active and a coordinate was produced
	// PreventDefault is set for touch moves during a stroke; the platform's
	// scroll and zoom gestures must not run.
	PreventDefault bool
}

// Tracker holds the active-stroke flag.
type Tracker struct {
	active bool
}

// Active reports whether a stroke is in progress.
func (t *Tracker) Active() bool { return t.active }

// Begin starts a stroke if the event yields a coordinate.
func (t *Tracker) Begin(ev Event, vp Viewport) (state.Point, bool) {
	p, ok := Normalize(ev, vp)
	if !ok {
		return state.Point{}, false
	}
	t.active = true
	return p, true
}

// Extend maps a move event. Moves outside a stroke are ignored.
func (t *Tracker) Extend(ev Event, vp Viewport) Move {
	if !t.active {
		return Move{}
	}
	m := Move{PreventDefault: ev.Source == Touch}
	m.Point, m.OK = Normalize(ev, vp)
	return m
}

// End closes the stroke and reports whether one was open.
func (t *Tracker) End() bool {
	was := t.active
	t.active = false
	return was
}
