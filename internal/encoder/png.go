package encoder

import (
	"bytes"
	"image"
	"image/png"

	"github.com/ytget/imgqueue/internal/model"
)

// PNGEncoder encodes images to PNG using Go's standard library.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() model.Format { return model.FormatPNG }
func (e *PNGEncoder) Available() bool      { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
