package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Display label constants
const (
	MaxLabelChars = 35
	LabelEllipsis = "..."
	ItemIDPrefix  = "img-"
)

// ImageItem is one queued source image. Data is owned by the queue entry
// and must not be modified after the item is created.
type ImageItem struct {
	ID   string
	Name string // original filename
	Type string // MIME type reported at intake
	Data []byte
}

// NewImageItem creates a queue entry with a fresh stable identity
func NewImageItem(name, mimeType string, data []byte) *ImageItem {
	return &ImageItem{
		ID:   generateItemID(),
		Name: name,
		Type: mimeType,
		Data: data,
	}
}

// DisplayLabel returns the filename shortened for the queue list: names
// longer than MaxLabelChars keep their head and tail around an ellipsis.
func (it *ImageItem) DisplayLabel() string {
	return TruncateName(it.Name, MaxLabelChars)
}

// Size returns the source size in bytes
func (it *ImageItem) Size() int64 {
	return int64(len(it.Data))
}

// TruncateName shortens name to at most maxChars characters by keeping
// (maxChars-3)/2 characters from each end.
func TruncateName(name string, maxChars int) string {
	runes := []rune(name)
	if len(runes) <= maxChars {
		return name
	}

	keep := (maxChars - len(LabelEllipsis)) / 2
	if keep <= 0 {
		return LabelEllipsis
	}
	return string(runes[:keep]) + LabelEllipsis + string(runes[len(runes)-keep:])
}

// generateItemID generates a unique item ID using UUID v7 so ids sort by creation time
func generateItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ItemIDPrefix+"%d", time.Now().UnixNano())
	}
	return ItemIDPrefix + id.String()
}
