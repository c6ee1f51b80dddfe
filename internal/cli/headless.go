package cli

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/queue"
)

// consoleView is the queue.View of the command line: alerts go to the
// error stream, everything visual is dropped
type consoleView struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleView(out io.Writer) *consoleView {
	return &consoleView{out: out}
}

func (v *consoleView) RenderQueue([]queue.Entry)        {}
func (v *consoleView) SetThumbnail(string, image.Image) {}
func (v *consoleView) ShowPreview(image.Image, bool)    {}
func (v *consoleView) ClearPreview()                    {}
func (v *consoleView) SetHasItems(bool)                 {}
func (v *consoleView) SetDragOverlay(bool)              {}

func (v *consoleView) Alert(alert queue.Alert) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, alert.Message())
}

// blankPreviewer skips decoding; nothing is displayed
type blankPreviewer struct{}

func (blankPreviewer) Preview(*model.ImageItem) (image.Image, error)   { return nil, nil }
func (blankPreviewer) Thumbnail(*model.ImageItem) (image.Image, error) { return nil, nil }
