// Package convert runs the per-item conversion pipeline: decode the source
// bytes, draw them onto a surface of the natural size, re-encode in the
// target format and hand the result to the download service. Every item
// runs on its own goroutine; completions are unordered.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/ytget/imgqueue/internal/download"
	"github.com/ytget/imgqueue/internal/encoder"
	"github.com/ytget/imgqueue/internal/model"
)

// Pipeline constants
const (
	// RevokeGrace delays releasing a staged output after delivery
	RevokeGrace  = 100 * time.Millisecond
	TaskIDPrefix = "convert-"
)

// Pipeline errors
var (
	ErrDecode             = errors.New("decode failed")
	ErrEncode             = errors.New("encode failed")
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	ErrInvalidJob         = errors.New("invalid conversion job")
)

// Job describes the conversion of one queued item
type Job struct {
	Item     *model.ImageItem
	Position int // 1-based
	Format   model.Format
	BaseName string
}

// Service handles image conversion operations
type Service struct {
	tasks      map[string]*model.ConversionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates

	registry    *encoder.Registry
	deliverer   download.Deliverer
	revokeGrace time.Duration
	wg          sync.WaitGroup
}

// NewService creates a new conversion service
func NewService(registry *encoder.Registry, deliverer download.Deliverer) *Service {
	return &Service{
		tasks:       make(map[string]*model.ConversionTask),
		registry:    registry,
		deliverer:   deliverer,
		revokeGrace: RevokeGrace,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// StartConversion registers a task for job and runs it in the background
func (s *Service) StartConversion(job Job) (*model.ConversionTask, error) {
	if job.Item == nil || job.Position < 1 {
		return nil, ErrInvalidJob
	}
	if job.BaseName == "" {
		job.BaseName = model.DefaultBaseName
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		ItemID:     job.Item.ID,
		SourceName: job.Item.Name,
		Position:   job.Position,
		Format:     job.Format,
		OutputName: model.OutputFileName(job.BaseName, job.Position, job.Format),
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runConversion(task, job)
	}()

	return s.snapshot(task), nil
}

// GetTask returns a copy of a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	cp := *task
	return &cp, true
}

// GetAllTasks returns copies of all tasks
func (s *Service) GetAllTasks() []*model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ConversionTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		cp := *task
		tasks = append(tasks, &cp)
	}
	return tasks
}

// Wait blocks until every started conversion finished and its staged
// output was revoked.
func (s *Service) Wait() {
	s.wg.Wait()
}

// runConversion performs decode, draw, encode and delivery for one task
func (s *Service) runConversion(task *model.ConversionTask, job Job) {
	s.setStatus(task, model.TaskStatusDecoding)

	src, err := decodeImage(job.Item.Data)
	if err != nil {
		log.Printf("Conversion %s: cannot decode item %d (%s): %v", task.ID, job.Position, job.Item.Name, err)
		s.finish(task, model.TaskStatusError, model.FailureDecode, err)
		return
	}

	bounds := src.Bounds()
	s.tasksMutex.Lock()
	task.Width = bounds.Dx()
	task.Height = bounds.Dy()
	s.tasksMutex.Unlock()

	s.setStatus(task, model.TaskStatusEncoding)

	surface := drawSurface(src)
	data, err := s.encode(surface, job.Format)
	if err != nil {
		log.Printf("Conversion %s: skipping item %d: %v", task.ID, job.Position, err)
		s.finish(task, model.TaskStatusSkipped, model.FailureEncode, err)
		return
	}

	handle, err := s.deliverer.Stage(data)
	if err != nil {
		s.finish(task, model.TaskStatusError, model.FailureDeliver, err)
		return
	}

	path, err := s.deliverer.Deliver(handle, task.OutputName)
	s.scheduleRevoke(handle)
	if err != nil {
		s.finish(task, model.TaskStatusError, model.FailureDeliver, err)
		return
	}

	s.tasksMutex.Lock()
	task.OutputPath = path
	task.OutputSize = int64(len(data))
	s.tasksMutex.Unlock()

	s.finish(task, model.TaskStatusCompleted, model.FailureNone, nil)
}

// encode re-encodes the surface at maximum quality
func (s *Service) encode(img image.Image, format model.Format) ([]byte, error) {
	enc := s.registry.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrEncode, ErrEncoderUnavailable, format)
	}

	data, err := enc.Encode(img, encoder.MaxQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty output", ErrEncode, format)
	}
	return data, nil
}

// scheduleRevoke releases the staged output after the grace delay
func (s *Service) scheduleRevoke(h *download.Handle) {
	s.wg.Add(1)
	time.AfterFunc(s.revokeGrace, func() {
		defer s.wg.Done()
		if err := s.deliverer.Revoke(h); err != nil {
			log.Printf("Failed to revoke %s: %v", h.ID, err)
		}
	})
}

// setStatus moves a task to status and notifies
func (s *Service) setStatus(task *model.ConversionTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// finish sets a terminal state for a task
func (s *Service) finish(task *model.ConversionTask, status model.TaskStatus, failure model.FailureKind, err error) {
	s.tasksMutex.Lock()
	task.Status = status
	task.Failure = failure
	if err != nil {
		task.LastError = err.Error()
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// snapshot copies a task under the lock
func (s *Service) snapshot(task *model.ConversionTask) *model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	cp := *task
	return &cp
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	cp := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&cp)
	}
}

// decodeImage decodes PNG, JPEG or WEBP source bytes
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}

// drawSurface draws src onto a fresh RGBA surface of its natural size
func drawSurface(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
