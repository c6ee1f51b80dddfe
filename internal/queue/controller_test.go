package queue

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/download"
	"github.com/ytget/imgqueue/internal/encoder"
	"github.com/ytget/imgqueue/internal/model"
)

func TestEnqueue_FiltersByType(t *testing.T) {
	h := newHarness()

	n, err := h.ctrl.Enqueue([]File{
		{Name: "a.png", Type: model.MIMEPNG},
		{Name: "notes.txt", Type: "text/plain"},
		{Name: "b.jpg", Type: model.MIMEJPG},
		{Name: "c.gif", Type: "image/gif"},
		{Name: "d.webp", Type: model.MIMEWEBP},
	})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected 3 accepted files, got %d", n)
	}

	items := h.ctrl.Items()
	want := []string{"a.png", "b.jpg", "d.webp"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("Item %d: expected %s, got %s", i, name, items[i].Name)
		}
	}
	if len(h.view.alerts) != 0 {
		t.Errorf("Expected no alert for a partially valid batch, got %v", h.view.alerts)
	}
	if !h.view.hasItems {
		t.Error("Expected the call-to-action label to switch to 'more'")
	}
}

func TestEnqueue_EmptyBatchIsNoop(t *testing.T) {
	h := newHarness()

	n, err := h.ctrl.Enqueue(nil)
	if n != 0 || err != nil {
		t.Fatalf("Expected (0, nil), got (%d, %v)", n, err)
	}
	if h.view.renders != 0 || len(h.view.alerts) != 0 {
		t.Error("Empty batch must not render or alert")
	}
}

func TestEnqueue_NoValidFiles(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("keep.png")})
	renders := h.view.renders

	_, err := h.ctrl.Enqueue([]File{
		{Name: "doc.pdf", Type: "application/pdf"},
		{Name: "anim.gif", Type: "image/gif"},
	})
	if !errors.Is(err, ErrNoValidFiles) {
		t.Fatalf("Expected ErrNoValidFiles, got %v", err)
	}
	alerts := h.view.alertList()
	if len(alerts) != 1 || alerts[0].Kind != AlertNoValidFiles {
		t.Fatalf("Expected one no-valid-files alert, got %v", alerts)
	}
	if alerts[0].Message() != "Please drop valid PNG, JPG/JPEG or WEBP image files only." {
		t.Errorf("Unexpected message: %q", alerts[0].Message())
	}
	if h.ctrl.Len() != 1 || h.view.renders != renders {
		t.Error("Queue must not change when no file is valid")
	}
}

func TestEnqueue_AllowsDuplicates(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("same.png")})
	h.ctrl.Enqueue([]File{imageFile("same.png")})

	items := h.ctrl.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Error("Duplicate files must still get distinct ids")
	}
}

func TestEnqueue_PreviewsFirstNewFile(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png")})
	h.ctrl.Enqueue([]File{imageFile("b.png"), imageFile("c.png")})

	items := h.ctrl.Items()
	last, ok := h.view.lastPreview()
	if !ok {
		t.Fatal("Expected a preview")
	}
	if last.id != items[1].ID || last.fade {
		t.Errorf("Expected immediate preview of b, got %+v", last)
	}
}

func TestRender_EntriesAndThumbnails(t *testing.T) {
	h := newHarness()
	long := strings.Repeat("x", 30) + "_holiday_photo.png"
	h.ctrl.Enqueue([]File{imageFile("a.png"), imageFile(long)})

	entries := h.view.entries
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Position != 1 || entries[1].Position != 2 {
		t.Errorf("Unexpected positions: %d, %d", entries[0].Position, entries[1].Position)
	}
	if entries[1].FullName != long {
		t.Errorf("Expected full name kept, got %q", entries[1].FullName)
	}
	if entries[1].Label != model.TruncateName(long, 35) || !strings.Contains(entries[1].Label, "...") {
		t.Errorf("Expected truncated label, got %q", entries[1].Label)
	}
	for _, e := range entries {
		if h.view.thumbs[e.ItemID] == 0 {
			t.Errorf("Missing thumbnail for %s", e.ItemID)
		}
	}
}

func TestRender_ThumbnailFailureLeavesRow(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png")})
	id := h.ctrl.Items()[0].ID
	h.prev.fail[id] = true
	h.view.thumbs = make(map[string]int)

	h.ctrl.Render()

	if len(h.view.entries) != 1 {
		t.Fatal("Row must still render when its thumbnail fails")
	}
	if h.view.thumbs[id] != 0 {
		t.Error("Failed thumbnail must not reach the view")
	}
}

func TestRemove_ByIdentity(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png"), imageFile("b.png"), imageFile("c.png")})
	items := h.ctrl.Items()

	if err := h.ctrl.Remove(items[1].ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	left := h.ctrl.Items()
	if len(left) != 2 || left[0] != items[0] || left[1] != items[2] {
		t.Fatalf("Unexpected queue after removal: %v", left)
	}
	if h.view.entries[1].Position != 2 || h.view.entries[1].ItemID != items[2].ID {
		t.Errorf("Expected c renumbered to position 2, got %+v", h.view.entries[1])
	}

	// removing again is a stale request
	if err := h.ctrl.Remove(items[1].ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
	if h.ctrl.Len() != 2 {
		t.Error("Stale removal must not mutate the queue")
	}
}

func TestRemoveAt_RejectsOutOfRange(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png")})

	for _, index := range []int{-1, 1, 7} {
		if err := h.ctrl.RemoveAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
	if h.ctrl.Len() != 1 {
		t.Error("Out of range removal must not mutate the queue")
	}
}

func TestRemove_LastItemEmptiesView(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png")})

	if err := h.ctrl.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if len(h.view.entries) != 0 {
		t.Error("Expected empty render")
	}
	if h.view.clears == 0 {
		t.Error("Expected preview cleared")
	}
	if h.view.hasItems {
		t.Error("Expected label reset to the initial call-to-action")
	}
	if h.ctrl.State() != StateEmpty {
		t.Errorf("Expected empty state, got %v", h.ctrl.State())
	}
}

func TestRemove_ShowsFirstRemaining(t *testing.T) {
	h := newHarness()
	h.ctrl.Enqueue([]File{imageFile("a.png"), imageFile("b.png")})
	items := h.ctrl.Items()

	h.ctrl.Remove(items[0].ID)

	last, _ := h.view.lastPreview()
	if last.id != items[1].ID || last.fade {
		t.Errorf("Expected immediate preview of b, got %+v", last)
	}
	if h.ctrl.State() != StateSingleStatic {
		t.Errorf("Expected single state, got %v", h.ctrl.State())
	}
}

func TestConvertAll_Validation(t *testing.T) {
	tests := []struct {
		name      string
		queued    int
		template  string
		wantErr   error
		wantAlert AlertKind
	}{
		{"empty queue", 0, "Photo", ErrEmptyQueue, AlertEmptyQueue},
		{"251 characters", 1, strings.Repeat("a", 251), ErrNameTooLong, AlertNameTooLong},
		{"251 after trim", 1, "  " + strings.Repeat("é", 251) + "  ", ErrNameTooLong, AlertNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			for i := 0; i < tt.queued; i++ {
				h.ctrl.Enqueue([]File{imageFile("a.png")})
			}

			_, err := h.ctrl.ConvertAll(model.FormatPNG, tt.template)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			alerts := h.view.alertList()
			if len(alerts) != 1 || alerts[0].Kind != tt.wantAlert {
				t.Errorf("Expected one %v alert, got %v", tt.wantAlert, alerts)
			}
			if len(h.conv.jobs) != 0 {
				t.Errorf("Expected no conversions, got %d", len(h.conv.jobs))
			}
		})
	}
}

func TestConvertAll_NameTemplate(t *testing.T) {
	tests := []struct {
		template string
		wantBase string
	}{
		{"", model.DefaultBaseName},
		{"   ", model.DefaultBaseName},
		{"  Holiday ", "Holiday"},
		{strings.Repeat("a", 250), strings.Repeat("a", 250)},
	}

	for _, tt := range tests {
		h := newHarness()
		h.ctrl.Enqueue([]File{imageFile("a.png"), imageFile("b.png")})

		tasks, err := h.ctrl.ConvertAll(model.FormatWEBP, tt.template)
		if err != nil {
			t.Fatalf("ConvertAll(%q) failed: %v", tt.template, err)
		}
		if len(tasks) != 2 {
			t.Fatalf("Expected 2 tasks, got %d", len(tasks))
		}
		for i, job := range h.conv.jobs {
			if job.BaseName != tt.wantBase || job.Position != i+1 || job.Format != model.FormatWEBP {
				t.Errorf("Unexpected job %d: %+v", i, job)
			}
		}
		if got := tasks[1].OutputName; got != tt.wantBase+"_2.webp" {
			t.Errorf("Expected %s_2.webp, got %s", tt.wantBase, got)
		}
	}
}

func TestConvertAll_DecodeFailureAlerts(t *testing.T) {
	h := newHarness()
	var seen []*model.ConversionTask
	h.ctrl.SetTaskListener(func(task *model.ConversionTask) {
		seen = append(seen, task)
	})

	h.conv.emit(&model.ConversionTask{Position: 3, Status: model.TaskStatusError, Failure: model.FailureDecode})
	h.conv.emit(&model.ConversionTask{Position: 4, Status: model.TaskStatusSkipped, Failure: model.FailureEncode})
	h.conv.emit(&model.ConversionTask{Position: 5, Status: model.TaskStatusError, Failure: model.FailureDeliver})

	alerts := h.view.alertList()
	if len(alerts) != 1 {
		t.Fatalf("Expected exactly one alert, got %v", alerts)
	}
	if alerts[0].Message() != "Error: The image with ID 3 is invalid." {
		t.Errorf("Unexpected message: %q", alerts[0].Message())
	}
	if len(seen) != 3 {
		t.Errorf("Listener should see every update, got %d", len(seen))
	}
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newConvertingHarness(t *testing.T) (*harness, *convert.Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := convert.NewService(
		encoder.NewRegistryWith(&encoder.PNGEncoder{}, &encoder.JPEGEncoder{}),
		download.NewService(dir),
	)
	h := &harness{
		view:  newFakeView(),
		clock: &fakeClock{},
		prev:  &fakePreviewer{fail: make(map[string]bool)},
	}
	h.ctrl = newController(h.view, h.prev, svc, h.clock, inlineSpawn)
	return h, svc, dir
}

func TestConvertAll_ProducesNumberedFiles(t *testing.T) {
	h, svc, dir := newConvertingHarness(t)
	data := jpegBytes(t)
	h.ctrl.Enqueue([]File{
		{Name: "a.jpeg", Type: model.MIMEJPEG, Data: data},
		{Name: "b.jpeg", Type: model.MIMEJPEG, Data: data},
		{Name: "c.jpeg", Type: model.MIMEJPEG, Data: data},
	})

	if _, err := h.ctrl.ConvertAll(model.FormatJPEG, "  Photo "); err != nil {
		t.Fatalf("ConvertAll failed: %v", err)
	}
	svc.Wait()

	for _, name := range []string{"Photo_1.jpeg", "Photo_2.jpeg", "Photo_3.jpeg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
	if alerts := h.view.alertList(); len(alerts) != 0 {
		t.Errorf("Expected no alerts, got %v", alerts)
	}
	if h.ctrl.Len() != 3 {
		t.Error("Conversion must not consume the queue")
	}
}

func TestConvertAll_CorruptImageIsolated(t *testing.T) {
	h, svc, dir := newConvertingHarness(t)
	h.ctrl.Enqueue([]File{
		{Name: "corrupt.png", Type: model.MIMEPNG, Data: []byte("definitely not a png")},
		{Name: "b.jpg", Type: model.MIMEJPG, Data: jpegBytes(t)},
	})

	if _, err := h.ctrl.ConvertAll(model.FormatPNG, ""); err != nil {
		t.Fatalf("ConvertAll failed: %v", err)
	}
	svc.Wait()

	alerts := h.view.alertList()
	if len(alerts) != 1 || alerts[0].Kind != AlertInvalidImage || alerts[0].Position != 1 {
		t.Fatalf("Expected one invalid-image alert for position 1, got %v", alerts)
	}
	if _, err := os.Stat(filepath.Join(dir, "ConvertedImage_2.png")); err != nil {
		t.Errorf("Expected ConvertedImage_2.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ConvertedImage_1.png")); !os.IsNotExist(err) {
		t.Errorf("Expected no output for the corrupt image, got %v", err)
	}
}

func TestConvertAll_LongestTemplateStillWrites(t *testing.T) {
	h, svc, dir := newConvertingHarness(t)
	h.ctrl.Enqueue([]File{{Name: "a.jpeg", Type: model.MIMEJPEG, Data: jpegBytes(t)}})

	tasks, err := h.ctrl.ConvertAll(model.FormatJPEG, strings.Repeat("a", MaxNameLength))
	if err != nil {
		t.Fatalf("ConvertAll failed: %v", err)
	}
	svc.Wait()

	final, ok := svc.GetTask(tasks[0].ID)
	if !ok || final.Status != model.TaskStatusCompleted {
		t.Fatalf("Expected a completed task, got %+v", final)
	}
	name := filepath.Base(final.OutputPath)
	if !strings.HasSuffix(name, "_1.jpeg") || len(name) > download.MaxFileNameBytes {
		t.Errorf("Unexpected output name %q (%d bytes)", name, len(name))
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}
