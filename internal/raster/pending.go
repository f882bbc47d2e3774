package raster

import (
	"image"

	"Flipbook/internal/state"
)

// Encoding is a snapshot being encoded into a frame.
type Encoding struct {
	done  chan struct{}
	frame state.Frame
	err   error
}

func encodeAsync(img image.Image) *Encoding {
	e := &Encoding{done: make(chan struct{})}
	go func() {
		defer close(e.done)
		e.frame, e.err = EncodeFrame(img)
	}()
	return e
}

func failedEncoding(err error) *Encoding {
	e := &Encoding{done: make(chan struct{}), err: err}
	close(e.done)
	return e
}

// Done is closed once the frame is ready.
func (e *Encoding) Done() <-chan struct{} { return e.done }

// Wait blocks until encoding finishes.
func (e *Encoding) Wait() (state.Frame, error) {
	<-e.done
	return e.frame, e.err
}

// Loading is a frame being decoded into a surface.
type Loading struct {
	done    chan struct{}
	applied bool
	err     error
}

func failedLoading(err error) *Loading {
	l := &Loading{done: make(chan struct{}), err: err}
	close(l.done)
	return l
}

// Done is closed once the decode has finished, whether or not it was applied.
func (l *Loading) Done() <-chan struct{} { return l.done }

// Wait blocks until the decode finishes. It reports whether the buffer was
// replaced; a superseded load returns false with a nil error.
func (l *Loading) Wait() (bool, error) {
	<-l.done
	return l.applied, l.err
}
