package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/HugoSmits86/nativewebp"

	"github.com/ytget/imgqueue/internal/model"
)

// CWebPCommand is the external WebP encoder looked up in PATH
const CWebPCommand = "cwebp"

// WebP encoder backends
const (
	BackendCWebP  = "cwebp"
	BackendNative = "built-in lossless"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// WebPEncoder encodes images to WebP. It prefers cwebp when installed
// (lossy at the requested quality, much smaller files) and otherwise
// encodes lossless in-process.
type WebPEncoder struct {
	once      sync.Once
	cwebpPath string
	lookPath  func(string) (string, error)
}

func (e *WebPEncoder) Format() model.Format { return model.FormatWEBP }

// Available is always true; the in-process encoder needs nothing installed.
func (e *WebPEncoder) Available() bool { return true }

// Backend names the encoder that Encode will use
func (e *WebPEncoder) Backend() string {
	if e.probe() != "" {
		return BackendCWebP
	}
	return BackendNative
}

func (e *WebPEncoder) probe() string {
	e.once.Do(func() {
		lookPath := e.lookPath
		if lookPath == nil {
			lookPath = exec.LookPath
		}
		if path, err := lookPath(CWebPCommand); err == nil {
			e.cwebpPath = path
		}
	})
	return e.cwebpPath
}

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if path := e.probe(); path != "" {
		return e.encodeCWebP(path, img, quality)
	}
	return encodeNative(img)
}

func encodeNative(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *WebPEncoder) encodeCWebP(cwebpPath string, img image.Image, quality int) ([]byte, error) {
	// cwebp reads files, so the raster goes through a temp PNG.
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("imgqueue_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("imgqueue_dst_%d_*.webp", id))
	if err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	srcFile.Close()

	cmd := exec.Command(cwebpPath, e.buildArgs(srcPath, dstPath, quality)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}

// buildArgs builds the cwebp command arguments
func (e *WebPEncoder) buildArgs(srcPath, dstPath string, quality int) []string {
	return []string{
		"-q", strconv.Itoa(clampQuality(quality)),
		"-m", "6", // compression method (0=fast, 6=best)
		"-mt",
		"-quiet",
		srcPath,
		"-o", dstPath,
	}
}
