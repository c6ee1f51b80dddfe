// Package encoder re-encodes decoded rasters into the selectable output
// formats. PNG and JPEG use the standard library codecs; WEBP uses cwebp
// when it is installed and a pure Go lossless encoder otherwise.
package encoder

import (
	"image"

	"github.com/ytget/imgqueue/internal/model"
)

// MaxQuality is the quality every conversion is encoded at
const MaxQuality = 100

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format handled by this encoder.
	Format() model.Format

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool
}

func clampQuality(quality int) int {
	if quality <= 0 || quality > MaxQuality {
		return MaxQuality
	}
	return quality
}
