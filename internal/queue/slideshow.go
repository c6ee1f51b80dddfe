package queue

import (
	"log"

	"github.com/ytget/imgqueue/internal/model"
)

// State is the slideshow state
type State int

const (
	StateEmpty State = iota
	StateSingleStatic
	StateCycling
	StatePausedByHover
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSingleStatic:
		return "single"
	case StateCycling:
		return "cycling"
	case StatePausedByHover:
		return "paused"
	default:
		return "unknown"
	}
}

// State returns the current slideshow state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentIndex returns the index of the item shown by the slideshow
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// HoverEnter pauses the slideshow and shows the hovered item
func (c *Controller) HoverEnter(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.queue.IndexOf(id)
	if index < 0 {
		return ErrItemNotFound
	}

	c.pausedByHover = true
	c.stopAdvanceLocked()
	c.stopResumeLocked()
	c.state = StatePausedByHover
	c.currentIndex = index
	c.requestPreviewLocked(c.queue.At(index), false)
	return nil
}

// HoverLeave schedules the slideshow to restart unless the pointer
// re-enters a row within ResumeDelay
func (c *Controller) HoverLeave(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pausedByHover = false
	c.stopResumeLocked()
	gen := c.resumeGen
	c.resumeTimer = c.clock.AfterFunc(ResumeDelay, func() {
		c.resume(gen)
	})
}

func (c *Controller) resume(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.resumeGen {
		return
	}
	c.resumeTimer = nil
	if c.pausedByHover {
		return
	}
	c.restartSlideshowLocked()
}

// restartSlideshowLocked re-evaluates the slideshow from scratch. The first
// image of a cycle swaps in directly; only advances fade.
func (c *Controller) restartSlideshowLocked() {
	c.stopAdvanceLocked()
	c.stopResumeLocked()
	c.pausedByHover = false
	c.currentIndex = 0

	switch n := c.queue.Len(); {
	case n == 0:
		c.state = StateEmpty
		c.previewSeq.Add(1)
		c.view.ClearPreview()
	case n == 1:
		c.state = StateSingleStatic
		c.requestPreviewLocked(c.queue.At(0), false)
	default:
		c.state = StateCycling
		c.requestPreviewLocked(c.queue.At(0), false)
		c.scheduleAdvanceLocked()
	}
}

func (c *Controller) scheduleAdvanceLocked() {
	gen := c.advanceGen
	c.advanceTimer = c.clock.AfterFunc(AdvanceInterval, func() {
		c.advance(gen)
	})
}

func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.advanceGen {
		return
	}
	n := c.queue.Len()
	if n <= 1 {
		c.advanceTimer = nil
		return
	}
	c.currentIndex = (c.currentIndex + 1) % n
	c.requestPreviewLocked(c.queue.At(c.currentIndex), true)
	c.scheduleAdvanceLocked()
}

func (c *Controller) stopAdvanceLocked() {
	if c.advanceTimer != nil {
		c.advanceTimer.Stop()
		c.advanceTimer = nil
	}
	c.advanceGen++
}

func (c *Controller) stopResumeLocked() {
	if c.resumeTimer != nil {
		c.resumeTimer.Stop()
		c.resumeTimer = nil
	}
	c.resumeGen++
}

// requestPreviewLocked decodes item off the lock; only the newest request
// reaches the view
func (c *Controller) requestPreviewLocked(item *model.ImageItem, fade bool) {
	if item == nil {
		return
	}
	seq := c.previewSeq.Add(1)
	c.spawn(func() {
		img, err := c.previewer.Preview(item)
		if err != nil {
			log.Printf("Preview for %s failed: %v", item.Name, err)
			return
		}
		if c.previewSeq.Load() != seq {
			return
		}
		c.view.ShowPreview(img, fade)
	})
}
