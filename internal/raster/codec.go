package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	"Flipbook/internal/state"
)

const pngDataURIPrefix = "data:image/png;base64,"

var frameEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodeFrame encodes img as a PNG data URI.
func EncodeFrame(img image.Image) (state.Frame, error) {
	var buf bytes.Buffer
	if err := frameEncoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("raster: encode frame: %w", err)
	}
	return state.Frame(pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// DecodeFrame decodes a base64 image data URI. Any format registered with
// the image package is accepted.
func DecodeFrame(f state.Frame) (image.Image, error) {
	s := string(f)
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("%w: not a data URI", ErrBadFrame)
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: expected base64 payload", ErrBadFrame)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	return img, nil
}
