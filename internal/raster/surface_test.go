package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"Flipbook/internal/state"
)

const testW, testH = 80, 45

func cleared(t *testing.T) (*Surface, state.Frame) {
	t.Helper()
	s := New(testW, testH)
	f, err := s.Clear().Wait()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	return s, f
}

func drawLine(t *testing.T, s *Surface, brush state.Brush, pts ...state.Point) *Encoding {
	t.Helper()
	if err := s.BeginStroke(pts[0]); err != nil {
		t.Fatalf("BeginStroke: %v", err)
	}
	for _, p := range pts[1:] {
		if err := s.ExtendStroke(p, brush); err != nil {
			t.Fatalf("ExtendStroke: %v", err)
		}
	}
	enc, err := s.EndStroke()
	if err != nil {
		t.Fatalf("EndStroke: %v", err)
	}
	return enc
}

func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestClearIsAllWhiteAndIdempotent(t *testing.T) {
	s, _ := cleared(t)
	drawLine(t, s, state.Brush{Color: color.Black, Size: 10}, state.Point{X: 5, Y: 5}, state.Point{X: 70, Y: 40})

	first, err := s.Clear().Wait()
	if err != nil {
		t.Fatal(err)
	}
	img := s.Image()
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			if c := rgbaAt(img, x, y); c != white {
				t.Fatalf("pixel (%d,%d) = %v after clear", x, y, c)
			}
		}
	}

	second, err := s.Clear().Wait()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("clear twice produced a different frame")
	}
}

func TestPaintStrokeColorsPixels(t *testing.T) {
	s, _ := cleared(t)
	red := color.NRGBA{R: 255, A: 255}
	drawLine(t, s, state.Brush{Color: red, Size: 6},
		state.Point{X: 10, Y: 20}, state.Point{X: 40, Y: 20}, state.Point{X: 70, Y: 20})

	img := s.Image()
	if c := rgbaAt(img, 40, 20); c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("stroke center = %v, want red", c)
	}
	if c := rgbaAt(img, 40, 40); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel off the stroke = %v, want white", c)
	}
}

func TestEraseRemovesPixelContent(t *testing.T) {
	s, _ := cleared(t)
	drawLine(t, s, state.Brush{Color: color.Black, Size: 10, Erase: true},
		state.Point{X: 10, Y: 20}, state.Point{X: 70, Y: 20})

	img := s.Image()
	if c := rgbaAt(img, 40, 20); c.A != 0 {
		t.Fatalf("erased pixel = %v, want transparent", c)
	}
	if c := rgbaAt(img, 40, 40); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel off the eraser = %v, want white", c)
	}
}

func TestStrokeRoundTrip(t *testing.T) {
	s, _ := cleared(t)
	brush := state.Brush{Color: color.NRGBA{B: 200, A: 255}, Size: 4}
	enc := drawLine(t, s, brush,
		state.Point{X: 5, Y: 10}, state.Point{X: 20, Y: 12}, state.Point{X: 35, Y: 30}, state.Point{X: 60, Y: 33})
	f, err := enc.Wait()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := s.Image()

	other := New(testW, testH)
	applied, err := other.Load(f).Wait()
	if err != nil || !applied {
		t.Fatalf("Load: applied=%v err=%v", applied, err)
	}
	if got := other.Image(); !bytes.Equal(got.Pix, want.Pix) {
		t.Fatalf("loaded pixels differ from the painted surface")
	}
}

func TestStrokeCallsOutOfOrder(t *testing.T) {
	s, _ := cleared(t)
	if err := s.ExtendStroke(state.Point{X: 1, Y: 1}, state.DefaultBrush()); !errors.Is(err, ErrNoStroke) {
		t.Fatalf("ExtendStroke without begin: %v", err)
	}
	if _, err := s.EndStroke(); !errors.Is(err, ErrNoStroke) {
		t.Fatalf("EndStroke without begin: %v", err)
	}
}

func TestMalformedFrameLeavesBuffer(t *testing.T) {
	s, _ := cleared(t)
	before := s.Image()

	for _, f := range []state.Frame{"", "data:image/png;base64,!!!", "data:image/png;base64,aGVsbG8="} {
		_, err := s.Load(f).Wait()
		if !errors.Is(err, ErrBadFrame) {
			t.Fatalf("Load(%q) err = %v, want ErrBadFrame", f, err)
		}
		if !s.Ready() {
			t.Fatalf("surface not ready after a failed load")
		}
		if !bytes.Equal(s.Image().Pix, before.Pix) {
			t.Fatalf("failed load changed the buffer")
		}
	}
}

func TestLaterLoadSupersedesEarlier(t *testing.T) {
	src, white := cleared(t)
	black, err := drawLine(t, src, state.Brush{Color: color.Black, Size: 60},
		state.Point{X: 0, Y: 22}, state.Point{X: 80, Y: 22}).Wait()
	if err != nil {
		t.Fatal(err)
	}

	s := New(testW, testH)
	first := s.Load(black)
	second := s.Load(white)
	if applied, _ := first.Wait(); applied {
		t.Fatalf("superseded load was applied")
	}
	if applied, err := second.Wait(); !applied || err != nil {
		t.Fatalf("latest load: applied=%v err=%v", applied, err)
	}
	if c := rgbaAt(s.Image(), 40, 22); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel = %v, want white from the latest load", c)
	}
}

func TestClosedSurfaceIgnoresCalls(t *testing.T) {
	s, f := cleared(t)
	s.Close()
	if _, err := s.Load(f).Wait(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Load after Close: %v", err)
	}
	if err := s.BeginStroke(state.Point{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("BeginStroke after Close: %v", err)
	}
	if _, err := s.Clear().Wait(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Clear after Close: %v", err)
	}
}

func TestLoadScalesToSurface(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := range small.Pix {
		small.Pix[i] = 255
	}
	f, err := EncodeFrame(small)
	if err != nil {
		t.Fatal(err)
	}
	s := New(testW, testH)
	if applied, err := s.Load(f).Wait(); !applied || err != nil {
		t.Fatalf("Load: applied=%v err=%v", applied, err)
	}
	img := s.Image()
	for _, pt := range []image.Point{{0, 0}, {testW - 1, testH - 1}, {40, 22}} {
		if c := rgbaAt(img, pt.X, pt.Y); c.A < 250 {
			t.Fatalf("pixel %v = %v, want opaque", pt, c)
		}
	}
}

func TestOnionSkinFades(t *testing.T) {
	_, white := cleared(t)
	img, err := OnionSkin(white, image.Rect(0, 0, testW, testH), 0.3)
	if err != nil {
		t.Fatal(err)
	}
	c := img.RGBAAt(10, 10)
	if c.A < 75 || c.A > 78 {
		t.Fatalf("onion alpha = %d, want about 77", c.A)
	}
	if _, err := OnionSkin("junk", image.Rect(0, 0, 4, 4), 0.3); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("OnionSkin(junk) = %v", err)
	}
}
