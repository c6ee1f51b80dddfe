package download

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Delivery constants
const (
	StagingPattern     = ".imgqueue-*.part"
	HandleIDPrefix     = "blob-"
	DefaultDirPerms    = 0755
	DefaultFilePerms   = 0644
	MaxDuplicateSuffix = 1000
	MaxFileNameBytes   = 255
)

// ErrHandleRevoked is returned when delivering a handle that was already released
var ErrHandleRevoked = errors.New("handle revoked")

// Handle references staged output bytes
type Handle struct {
	ID   string
	Size int64
	path string
}

// Service writes converted images into an output directory
type Service struct {
	mu        sync.Mutex
	outputDir string
	handles   map[string]*Handle
}

// NewService creates a new download service
func NewService(outputDir string) *Service {
	return &Service{
		outputDir: outputDir,
		handles:   make(map[string]*Handle),
	}
}

// OutputDirectory returns the configured output directory
func (s *Service) OutputDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputDir
}

// SetOutputDirectory sets the output directory for later deliveries
func (s *Service) SetOutputDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputDir = dir
}

// Stage writes data to a hidden staging file in the output directory
func (s *Service) Stage(data []byte) (*Handle, error) {
	dir := s.OutputDirectory()
	if err := os.MkdirAll(dir, DefaultDirPerms); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.CreateTemp(dir, StagingPattern)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close staging file: %w", err)
	}

	h := &Handle{
		ID:   generateHandleID(),
		Size: int64(len(data)),
		path: f.Name(),
	}

	s.mu.Lock()
	s.handles[h.ID] = h
	s.mu.Unlock()

	return h, nil
}

// Deliver publishes a staged handle as name inside the output directory.
// An existing file is never overwritten; "name (1).ext", "name (2).ext", ...
// are tried instead. Names over MaxFileNameBytes are shortened from the front
// of the stem, keeping a trailing "_<n>" position and the extension.
func (s *Service) Deliver(h *Handle, name string) (string, error) {
	s.mu.Lock()
	_, live := s.handles[h.ID]
	dir := s.outputDir
	s.mu.Unlock()

	if !live {
		return "", fmt.Errorf("deliver %s: %w", h.ID, ErrHandleRevoked)
	}

	name = SanitizeFileName(name)
	stem, tail := splitFileName(name)

	for i := 0; i <= MaxDuplicateSuffix; i++ {
		suffix := tail
		if i > 0 {
			ext := filepath.Ext(tail)
			suffix = fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(tail, ext), i, ext)
		}
		candidate := FitFileName(stem, suffix)
		target := filepath.Join(dir, candidate)

		err := publish(h.path, target)
		if err == nil {
			log.Printf("Delivered %s (%d bytes) to %s", h.ID, h.Size, target)
			return target, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("deliver %s: %w", candidate, err)
		}
	}

	return "", fmt.Errorf("deliver %s: too many files with the same name", name)
}

// Revoke removes the staging file of a handle
func (s *Service) Revoke(h *Handle) error {
	s.mu.Lock()
	_, live := s.handles[h.ID]
	delete(s.handles, h.ID)
	s.mu.Unlock()

	if !live {
		return nil
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("revoke %s: %w", h.ID, err)
	}
	return nil
}

// LiveHandles returns the number of staged, unrevoked handles
func (s *Service) LiveHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// publish hard-links src to dst, copying when linking is not possible.
// Both paths fail with os.ErrExist when dst already exists.
func publish(src, dst string) error {
	err := os.Link(src, dst)
	if err == nil || errors.Is(err, os.ErrExist) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePerms)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// splitFileName separates a name into a trimmable stem and the tail that
// must survive shortening: an optional "_<digits>" marker plus the extension
func splitFileName(name string) (stem, tail string) {
	ext := filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)

	i := strings.LastIndexByte(stem, '_')
	if i < 0 || i == len(stem)-1 {
		return stem, ext
	}
	for _, r := range stem[i+1:] {
		if r < '0' || r > '9' {
			return stem, ext
		}
	}
	return stem[:i], stem[i:] + ext
}

// FitFileName joins stem and tail, dropping bytes from the end of stem on a
// rune boundary until the result fits MaxFileNameBytes
func FitFileName(stem, tail string) string {
	budget := MaxFileNameBytes - len(tail)
	if budget < 0 {
		budget = 0
	}
	for len(stem) > budget {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}
	return stem + tail
}

// SanitizeFileName replaces characters that cannot appear in a file name
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
		"\n", " ", "\r", " ", "\t", " ",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// generateHandleID generates a unique handle ID
func generateHandleID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return HandleIDPrefix + uuid.NewString()
	}
	return HandleIDPrefix + id.String()
}
