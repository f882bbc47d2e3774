package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"Flipbook/internal/input"
	"Flipbook/internal/state"
)

func TestContainViewport(t *testing.T) {
	tests := []struct {
		name string
		size fyne.Size
		want input.Viewport
	}{
		{
			name: "wide widget letterboxes left and right",
			size: fyne.NewSize(1000, 450),
			want: input.Viewport{Left: 100, Top: 0, Width: 800, Height: 450, BufferWidth: 800, BufferHeight: 450},
		},
		{
			name: "tall widget letterboxes top and bottom",
			size: fyne.NewSize(400, 400),
			want: input.Viewport{Left: 0, Top: 87.5, Width: 400, Height: 225, BufferWidth: 800, BufferHeight: 450},
		},
		{
			name: "zero size",
			size: fyne.NewSize(0, 0),
			want: input.Viewport{BufferWidth: 800, BufferHeight: 450},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containViewport(tt.size, 800, 450); got != tt.want {
				t.Fatalf("containViewport = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContainViewportMapsCorners(t *testing.T) {
	vp := containViewport(fyne.NewSize(400, 400), 800, 450)
	p, ok := vp.Map(state.Point{X: 400, Y: 312.5})
	if !ok || p != (state.Point{X: 800, Y: 450}) {
		t.Fatalf("bottom-right maps to %v, %v", p, ok)
	}
	if _, ok := containViewport(fyne.NewSize(0, 0), 800, 450).Map(state.Point{}); ok {
		t.Fatalf("zero-size board produced a coordinate")
	}
}
