package model

import (
	"fmt"
	"strings"
)

// Format is an output raster format selectable by the user
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWEBP Format = "webp"
)

// Accepted source MIME types. image/jpg is not registered but some
// platforms report it for .jpg files.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEJPG  = "image/jpg"
	MIMEWEBP = "image/webp"
)

// Formats returns the selectable output formats in display order
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatWEBP}
}

// ParseFormat maps a user supplied name to a Format. "jpg" is accepted as
// an alias of jpeg.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWEBP, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", name)
	}
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// MIMEType returns the MIME type written for this format
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return MIMEJPEG
	case FormatWEBP:
		return MIMEWEBP
	default:
		return MIMEPNG
	}
}

// Extension returns the output file extension without dot
func (f Format) Extension() string {
	return string(f)
}

// IsAcceptedType reports whether a source MIME type may enter the queue
func IsAcceptedType(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case MIMEPNG, MIMEJPEG, MIMEJPG, MIMEWEBP:
		return true
	default:
		return false
	}
}
