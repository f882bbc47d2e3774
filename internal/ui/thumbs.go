package ui

import (
	"image"
	"log/slog"
	"sync"

	"Flipbook/internal/raster"
	"Flipbook/internal/state"
)

// frameImages decodes frames for the strip and the preview, keeping the
// images of frames still in the collection.
type frameImages struct {
	mu    sync.Mutex
	cache map[state.Frame]image.Image
	log   *slog.Logger
}

func newFrameImages(log *slog.Logger) *frameImages {
	return &frameImages{cache: make(map[state.Frame]image.Image), log: log}
}

func (fi *frameImages) get(f state.Frame) image.Image {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	if img, ok := fi.cache[f]; ok {
		return img
	}
	img, err := raster.DecodeFrame(f)
	if err != nil {
		fi.log.Warn("ui: decode frame", "error", err)
		return nil
	}
	fi.cache[f] = img
	return img
}

// prune drops images of frames no longer in c.
func (fi *frameImages) prune(c *state.Collection) {
	keep := make(map[state.Frame]bool, c.Len())
	for _, f := range c.Frames() {
		keep[f] = true
	}
	fi.mu.Lock()
	defer fi.mu.Unlock()
	for f := range fi.cache {
		if !keep[f] {
			delete(fi.cache, f)
		}
	}
}
