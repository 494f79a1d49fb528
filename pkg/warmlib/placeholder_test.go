package warmlib

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
)

func TestPlaceholderSourceIsDeterministic(t *testing.T) {
	src := &PlaceholderSource{}
	a, err := src.SourceImage()
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	b, err := src.SourceImage()
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if a != b {
		t.Error("repeated calls must produce byte-identical payloads")
	}
}

func TestPlaceholderSourceEncoding(t *testing.T) {
	const prefix = "data:image/png;base64,"
	src := &PlaceholderSource{Size: 16}
	out, err := src.SourceImage()
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !strings.HasPrefix(out, prefix) {
		t.Fatalf("expected data URI prefix, got %q", out[:32])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, prefix))
	if err != nil {
		t.Fatalf("invalid base64 payload: %s", err.Error())
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a valid PNG: %s", err.Error())
	}
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("expected a 16x16 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}
