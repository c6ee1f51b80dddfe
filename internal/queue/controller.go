// Package queue owns the ordered image queue and everything driven by it:
// intake, removal, rendering, the preview slideshow, drag tracking and
// batch conversion dispatch.
package queue

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/preview"
)

const (
	// MaxNameLength is the longest accepted filename template, in characters
	MaxNameLength = 250

	AdvanceInterval = 2000 * time.Millisecond
	ResumeDelay     = 2000 * time.Millisecond
	FadeDuration    = 500 * time.Millisecond
)

// File is one file handed over by the host (file dialog, drop, CLI args)
type File struct {
	Name string
	Type string
	Data []byte
}

// Controller is the single owner of queue and slideshow state
type Controller struct {
	mu    sync.Mutex
	queue Queue

	view      View
	previewer preview.Previewer
	converter convert.Converter
	clock     Clock
	spawn     func(func())

	onTask func(*model.ConversionTask)

	// slideshow
	state         State
	currentIndex  int
	pausedByHover bool
	advanceTimer  Timer
	advanceGen    uint64
	resumeTimer   Timer
	resumeGen     uint64
	previewSeq    atomic.Uint64

	// drag
	dragCounter    int
	overlayVisible bool
}

// NewController wires a controller to its collaborators
func NewController(view View, previewer preview.Previewer, converter convert.Converter) *Controller {
	return newController(view, previewer, converter, realClock{}, goSpawn)
}

func newController(view View, previewer preview.Previewer, converter convert.Converter, clock Clock, spawn func(func())) *Controller {
	c := &Controller{
		view:      view,
		previewer: previewer,
		converter: converter,
		clock:     clock,
		spawn:     spawn,
	}
	converter.SetUpdateCallback(c.handleTaskUpdate)
	return c
}

// SetTaskListener registers a callback receiving every conversion task update
func (c *Controller) SetTaskListener(listener func(*model.ConversionTask)) {
	c.mu.Lock()
	c.onTask = listener
	c.mu.Unlock()
}

// Len returns the number of queued items
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// Items returns a snapshot of the queue in display order
func (c *Controller) Items() []*model.ImageItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Items()
}

// Enqueue appends every accepted image of files in received order and
// returns how many were added
func (c *Controller) Enqueue(files []File) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	var added []*model.ImageItem
	for _, f := range files {
		if !model.IsAcceptedType(f.Type) {
			log.Printf("Skipping %q: unsupported type %q", f.Name, f.Type)
			continue
		}
		added = append(added, model.NewImageItem(f.Name, f.Type, f.Data))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(added) == 0 {
		c.view.Alert(Alert{Kind: AlertNoValidFiles})
		return 0, ErrNoValidFiles
	}

	c.queue.Append(added...)
	log.Printf("Enqueued %d image(s), queue length=%d", len(added), c.queue.Len())

	c.renderLocked()
	c.restartSlideshowLocked()
	c.view.SetHasItems(true)
	c.requestPreviewLocked(added[0], false)

	return len(added), nil
}

// Remove deletes the item with id from the queue
func (c *Controller) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.queue.IndexOf(id)
	if index < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrItemNotFound)
	}
	c.removeAtLocked(index)
	return nil
}

// RemoveAt deletes the item currently at index
func (c *Controller) RemoveAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= c.queue.Len() {
		return fmt.Errorf("remove at %d (len %d): %w", index, c.queue.Len(), ErrIndexOutOfRange)
	}
	c.removeAtLocked(index)
	return nil
}

func (c *Controller) removeAtLocked(index int) {
	removed, _ := c.queue.RemoveAt(index)
	log.Printf("Removed %s (%s), queue length=%d", removed.ID, removed.Name, c.queue.Len())

	c.renderLocked()
	c.restartSlideshowLocked()

	if c.queue.Len() == 0 {
		c.view.SetHasItems(false)
		return
	}
	c.requestPreviewLocked(c.queue.At(0), false)
}

// Render rebuilds the queue view from current state
func (c *Controller) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	items := c.queue.Items()
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{
			ItemID:   item.ID,
			Position: i + 1,
			Label:    item.DisplayLabel(),
			FullName: item.Name,
		}
	}
	c.view.RenderQueue(entries)

	for _, item := range items {
		item := item
		c.spawn(func() {
			img, err := c.previewer.Thumbnail(item)
			if err != nil {
				log.Printf("Thumbnail for %s failed: %v", item.Name, err)
				return
			}
			c.view.SetThumbnail(item.ID, img)
		})
	}
}

// ConvertAll dispatches one independent conversion per queued item. Output
// files are named <nameTemplate>_<position>.<ext>.
func (c *Controller) ConvertAll(format model.Format, nameTemplate string) ([]*model.ConversionTask, error) {
	c.mu.Lock()
	items := c.queue.Items()
	if len(items) == 0 {
		c.view.Alert(Alert{Kind: AlertEmptyQueue})
		c.mu.Unlock()
		return nil, ErrEmptyQueue
	}

	baseName := strings.TrimSpace(nameTemplate)
	if utf8.RuneCountInString(baseName) > MaxNameLength {
		c.view.Alert(Alert{Kind: AlertNameTooLong})
		c.mu.Unlock()
		return nil, ErrNameTooLong
	}
	c.mu.Unlock()

	if baseName == "" {
		baseName = model.DefaultBaseName
	}

	log.Printf("Converting %d image(s) to %s as %s_N", len(items), format, baseName)

	tasks := make([]*model.ConversionTask, 0, len(items))
	for i, item := range items {
		task, err := c.converter.StartConversion(convert.Job{
			Item:     item,
			Position: i + 1,
			Format:   format,
			BaseName: baseName,
		})
		if err != nil {
			log.Printf("Failed to start conversion of %s: %v", item.Name, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (c *Controller) handleTaskUpdate(task *model.ConversionTask) {
	c.mu.Lock()
	listener := c.onTask
	if task.Status == model.TaskStatusError && task.Failure == model.FailureDecode {
		c.view.Alert(Alert{Kind: AlertInvalidImage, Position: task.Position})
	}
	c.mu.Unlock()

	if task.Status == model.TaskStatusSkipped {
		log.Printf("Skipped %s: %s", task.OutputName, task.LastError)
	}
	if listener != nil {
		listener(task)
	}
}
