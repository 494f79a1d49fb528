package warmlib

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
)

// ImageSource produces the source image payload for a warm request. The
// scheduler only requires a string encoding of an image suitable for the
// request payload; the content itself is irrelevant to the backend.
type ImageSource interface {
	SourceImage() (string, error)
}

const defaultPlaceholderSize = 64

// PlaceholderSource generates a deterministic gradient PNG encoded as a
// base64 data URI. The same size always yields byte-identical output, so
// repeated warm calls carry an identical payload.
type PlaceholderSource struct {
	// Size is the width and height of the generated square image.
	// Zero means the default of 64 pixels.
	Size int
}

func (s *PlaceholderSource) SourceImage() (string, error) {
	size := s.Size
	if size <= 0 {
		size = defaultPlaceholderSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / size),
				G: uint8(y * 255 / size),
				B: uint8((x + y) * 255 / (2 * size)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
