// Package preview decodes queued images into display-sized rasters for the
// slideshow and the queue thumbnails. Decoded results are cached by content
// fingerprint, so hovering back and forth does not decode the same bytes
// again.
package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/ytget/imgqueue/internal/model"
)

// Bounds of the rendered rasters, in pixels
const (
	PreviewMaxSize   = 640
	ThumbnailMaxSize = 64
	DefaultCacheSize = 128
)

// Previewer produces display rasters for queue items
type Previewer interface {
	Preview(item *model.ImageItem) (image.Image, error)
	Thumbnail(item *model.ImageItem) (image.Image, error)
}

type cacheKey struct {
	hash  uint64
	bound int
}

// Service decodes and caches preview rasters
type Service struct {
	mu         sync.Mutex
	cache      map[cacheKey]image.Image
	order      []cacheKey
	maxEntries int
	decodes    int
}

// NewService creates a preview service keeping at most maxEntries rasters
func NewService(maxEntries int) *Service {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Service{
		cache:      make(map[cacheKey]image.Image),
		maxEntries: maxEntries,
	}
}

// Preview returns the item fitted inside PreviewMaxSize
func (s *Service) Preview(item *model.ImageItem) (image.Image, error) {
	return s.render(item, PreviewMaxSize)
}

// Thumbnail returns the item fitted inside ThumbnailMaxSize
func (s *Service) Thumbnail(item *model.ImageItem) (image.Image, error) {
	return s.render(item, ThumbnailMaxSize)
}

// Decodes returns how many times source bytes were actually decoded
func (s *Service) Decodes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decodes
}

func (s *Service) render(item *model.ImageItem, bound int) (image.Image, error) {
	key := cacheKey{hash: xxhash.Sum64(item.Data), bound: bound}

	s.mu.Lock()
	if img, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return img, nil
	}
	s.decodes++
	s.mu.Unlock()

	src, err := imaging.Decode(bytes.NewReader(item.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode preview of %s: %w", item.Name, err)
	}

	img := src
	if b := src.Bounds(); b.Dx() > bound || b.Dy() > bound {
		img = imaging.Fit(src, bound, bound, imaging.Lanczos)
	}

	s.store(key, img)
	return img, nil
}

// store inserts a raster, evicting the oldest entries beyond maxEntries
func (s *Service) store(key cacheKey, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[key]; ok {
		return
	}
	s.cache[key] = img
	s.order = append(s.order, key)

	for len(s.order) > s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
}
