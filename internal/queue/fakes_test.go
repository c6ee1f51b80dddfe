package queue

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/model"
)

// fakeClock fires timers only when Advance moves time past their deadline
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()
		next.f()
	}
}

// Live counts timers that are scheduled and neither stopped nor fired
func (c *fakeClock) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

// taggedImage remembers which item it was rendered from
type taggedImage struct {
	image.Image
	id string
}

type fakePreviewer struct {
	mu   sync.Mutex
	fail map[string]bool
}

func (p *fakePreviewer) render(item *model.ImageItem) (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[item.ID] {
		return nil, errors.New("broken image")
	}
	return taggedImage{Image: image.NewGray(image.Rect(0, 0, 1, 1)), id: item.ID}, nil
}

func (p *fakePreviewer) Preview(item *model.ImageItem) (image.Image, error) {
	return p.render(item)
}

func (p *fakePreviewer) Thumbnail(item *model.ImageItem) (image.Image, error) {
	return p.render(item)
}

type shownPreview struct {
	id   string
	fade bool
}

type fakeView struct {
	mu       sync.Mutex
	entries  []Entry
	renders  int
	thumbs   map[string]int
	previews []shownPreview
	clears   int
	hasItems bool
	overlay  bool
	alerts   []Alert
}

func newFakeView() *fakeView {
	return &fakeView{thumbs: make(map[string]int)}
}

func (v *fakeView) RenderQueue(entries []Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = append([]Entry(nil), entries...)
	v.renders++
}

func (v *fakeView) SetThumbnail(itemID string, _ image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.thumbs[itemID]++
}

func (v *fakeView) ShowPreview(img image.Image, fade bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.previews = append(v.previews, shownPreview{id: img.(taggedImage).id, fade: fade})
}

func (v *fakeView) ClearPreview() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
}

func (v *fakeView) SetHasItems(hasItems bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hasItems = hasItems
}

func (v *fakeView) SetDragOverlay(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.overlay = visible
}

func (v *fakeView) Alert(alert Alert) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, alert)
}

func (v *fakeView) lastPreview() (shownPreview, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.previews) == 0 {
		return shownPreview{}, false
	}
	return v.previews[len(v.previews)-1], true
}

func (v *fakeView) alertList() []Alert {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Alert(nil), v.alerts...)
}

// fakeConverter records jobs without running them
type fakeConverter struct {
	mu       sync.Mutex
	jobs     []convert.Job
	callback func(*model.ConversionTask)
}

func (f *fakeConverter) SetUpdateCallback(cb func(*model.ConversionTask)) {
	f.mu.Lock()
	f.callback = cb
	f.mu.Unlock()
}

func (f *fakeConverter) StartConversion(job convert.Job) (*model.ConversionTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return &model.ConversionTask{
		ItemID:     job.Item.ID,
		Position:   job.Position,
		Format:     job.Format,
		OutputName: model.OutputFileName(job.BaseName, job.Position, job.Format),
		Status:     model.TaskStatusPending,
	}, nil
}

func (f *fakeConverter) GetTask(string) (*model.ConversionTask, bool) { return nil, false }
func (f *fakeConverter) Wait()                                        {}

func (f *fakeConverter) emit(task *model.ConversionTask) {
	f.mu.Lock()
	cb := f.callback
	f.mu.Unlock()
	cb(task)
}

func inlineSpawn(f func()) { f() }

type harness struct {
	ctrl  *Controller
	view  *fakeView
	clock *fakeClock
	conv  *fakeConverter
	prev  *fakePreviewer
}

func newHarness() *harness {
	h := &harness{
		view:  newFakeView(),
		clock: &fakeClock{},
		conv:  &fakeConverter{},
		prev:  &fakePreviewer{fail: make(map[string]bool)},
	}
	h.ctrl = newController(h.view, h.prev, h.conv, h.clock, inlineSpawn)
	return h
}

func imageFile(name string) File {
	return File{Name: name, Type: model.MIMEPNG, Data: []byte(name)}
}
