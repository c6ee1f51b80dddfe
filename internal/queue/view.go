package queue

import (
	"fmt"
	"image"
)

// Entry is one rendered row of the queue list
type Entry struct {
	ItemID   string
	Position int    // 1-based
	Label    string // truncated display name
	FullName string
}

// AlertKind enumerates user-facing notifications raised by the controller
type AlertKind int

const (
	AlertNoValidFiles AlertKind = iota
	AlertEmptyQueue
	AlertNameTooLong
	AlertInvalidImage
)

// Alert is a blocking user notification
type Alert struct {
	Kind     AlertKind
	Position int // 1-based item position for AlertInvalidImage
}

// Message returns the default English text of the alert
func (a Alert) Message() string {
	switch a.Kind {
	case AlertNoValidFiles:
		return "Please drop valid PNG, JPG/JPEG or WEBP image files only."
	case AlertEmptyQueue:
		return "Please upload/drag & drop one or more images of type (PNG, JPG/JPEG, WEBP)."
	case AlertNameTooLong:
		return fmt.Sprintf("There is a %d-character limit on filenames. Please shorten the name.", MaxNameLength)
	case AlertInvalidImage:
		return fmt.Sprintf("Error: The image with ID %d is invalid.", a.Position)
	default:
		return "Unknown error"
	}
}

// View is the presentation surface driven by Controller. Controller calls
// it while holding its lock, so implementations must not block and must not
// call back into the controller synchronously.
type View interface {
	// RenderQueue replaces the whole list. An empty slice hides the panel.
	RenderQueue(entries []Entry)

	// SetThumbnail fills the thumbnail of a rendered row. Unknown ids are ignored.
	SetThumbnail(itemID string, img image.Image)

	// ShowPreview swaps the preview surface, fading when fade is true.
	ShowPreview(img image.Image, fade bool)

	// ClearPreview empties and hides the preview surface.
	ClearPreview()

	// SetHasItems switches the upload call-to-action label.
	SetHasItems(hasItems bool)

	// SetDragOverlay shows or hides the drop overlay.
	SetDragOverlay(visible bool)

	// Alert shows a blocking notification.
	Alert(alert Alert)
}
