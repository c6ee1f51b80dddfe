package queue

import "github.com/ytget/imgqueue/internal/model"

// DragEnter records a drag entering the window. firstType is the MIME type
// of the first dragged item, empty when it is not a file.
func (c *Controller) DragEnter(firstType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragCounter++
	if model.IsAcceptedType(firstType) {
		c.setOverlayLocked(true)
	}
}

// DragLeave records a drag leaving; the overlay hides once every nested
// enter has left
func (c *Controller) DragLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragCounter--
	if c.dragCounter <= 0 {
		c.dragCounter = 0
		c.setOverlayLocked(false)
	}
}

// Drop ends the drag and enqueues the dropped files
func (c *Controller) Drop(files []File) (int, error) {
	c.mu.Lock()
	c.dragCounter = 0
	c.setOverlayLocked(false)
	c.mu.Unlock()

	return c.Enqueue(files)
}

// Escape cancels a drag in progress
func (c *Controller) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragCounter = 0
	c.setOverlayLocked(false)
}

// DragActive reports whether the drop overlay is shown
func (c *Controller) DragActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlayVisible
}

func (c *Controller) setOverlayLocked(visible bool) {
	c.overlayVisible = visible
	c.view.SetDragOverlay(visible)
}
