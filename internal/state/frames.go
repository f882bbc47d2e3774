package state

// Frame is one committed raster snapshot, held as an encoded image data URI.
// Strings are immutable, so a Frame never changes once committed.
type Frame string

// Collection is the ordered frame sequence plus the edit cursor.
//
// A Collection is never modified after construction. Every operation returns
// a new Collection, or the receiver itself when the operation does not apply
// (an out-of-range index, deleting the last frame). Readers such as the
// playback loop can therefore hold a *Collection without locking.
type Collection struct {
	frames   []Frame
	index    int
	revision uint64
}

// NewCollection returns a collection holding first, with the cursor on it.
func NewCollection(first Frame) *Collection {
	return &Collection{
		frames:   []Frame{first},
		revision: nextRevision(),
	}
}

// Len returns the number of frames; always at least 1.
func (c *Collection) Len() int { return len(c.frames) }

// Index returns the edit cursor.
func (c *Collection) Index() int { return c.index }

// Revision changes whenever the collection does.
func (c *Collection) Revision() uint64 { return c.revision }

// Current returns the frame under the edit cursor.
func (c *Collection) Current() Frame { return c.frames[c.index] }

// Frame returns the frame at i.
func (c *Collection) Frame(i int) (Frame, bool) {
	if !c.valid(i) {
		return "", false
	}
	return c.frames[i], true
}

// At returns the frame at i modulo the length. It is how the playback cursor
// reads: a cursor left past the end by a shrink wraps instead of panicking.
func (c *Collection) At(i int) Frame {
	n := len(c.frames)
	i %= n
	if i < 0 {
		i += n
	}
	return c.frames[i]
}

// Frames returns a copy of the frame list.
func (c *Collection) Frames() []Frame {
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// Commit replaces the frame at i.
func (c *Collection) Commit(i int, f Frame) *Collection {
	if !c.valid(i) {
		return c
	}
	next := c.clone(c.index)
	next.frames[i] = f
	return next
}

// InsertAfter inserts a copy of the frame at i directly after it and moves
// the cursor onto the copy.
func (c *Collection) InsertAfter(i int) *Collection {
	if !c.valid(i) {
		return c
	}
	frames := make([]Frame, 0, len(c.frames)+1)
	frames = append(frames, c.frames[:i+1]...)
	frames = append(frames, c.frames[i])
	frames = append(frames, c.frames[i+1:]...)
	return &Collection{frames: frames, index: i + 1, revision: nextRevision()}
}

// Select moves the cursor to i.
func (c *Collection) Select(i int) *Collection {
	if !c.valid(i) || i == c.index {
		return c
	}
	return c.clone(i)
}

// DeleteAt removes the frame at i. The last remaining frame is never
// removed. When i is at or before the cursor, the cursor steps back by one,
// stopping at 0.
func (c *Collection) DeleteAt(i int) *Collection {
	if !c.valid(i) || len(c.frames) <= 1 {
		return c
	}
	frames := make([]Frame, 0, len(c.frames)-1)
	frames = append(frames, c.frames[:i]...)
	frames = append(frames, c.frames[i+1:]...)

	index := c.index
	if i <= index {
		index = max(0, index-1)
	}
	return &Collection{frames: frames, index: index, revision: nextRevision()}
}

func (c *Collection) valid(i int) bool {
	return i >= 0 && i < len(c.frames)
}

func (c *Collection) clone(index int) *Collection {
	frames := make([]Frame, len(c.frames))
	copy(frames, c.frames)
	return &Collection{frames: frames, index: index, revision: nextRevision()}
}
