package state

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#000000", want: color.NRGBA{A: 255}},
		{in: "#ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "#F00", want: color.NRGBA{R: 255, A: 255}},
		{in: "00ff00", want: color.NRGBA{G: 255, A: 255}},
		{in: "red", want: color.NRGBA{R: 255, A: 255}},
		{in: " White ", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "", wantErr: true},
		{in: "#12", wantErr: true},
		{in: "not-a-color", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorHex(color.NRGBA{R: 0x12, G: 0xab, B: 0x0f, A: 255}); got != "#12ab0f" {
		t.Fatalf("ColorHex = %q", got)
	}
}

func TestBrushClamp(t *testing.T) {
	b := Brush{Size: 0}.Clamp(1, 50)
	if b.Size != 1 || b.Color == nil {
		t.Fatalf("clamp low: %+v", b)
	}
	if b := (Brush{Size: 80}).Clamp(1, 50); b.Size != 50 {
		t.Fatalf("clamp high: size %d", b.Size)
	}
}

func TestSessionIDsDiffer(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Fatalf("session ids repeat")
	}
}
