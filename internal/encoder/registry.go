package encoder

import (
	"fmt"
	"strings"

	"github.com/ytget/imgqueue/internal/model"
)

// Registry holds all available encoders keyed by output format.
type Registry struct {
	encoders map[model.Format]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(&PNGEncoder{}, &JPEGEncoder{}, &WebPEncoder{})
}

// NewRegistryWith registers the given encoders; unavailable ones are skipped.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[model.Format]Encoder),
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format model.Format) Encoder {
	return r.encoders[format]
}

// Available returns all available formats in display order.
func (r *Registry) Available() []model.Format {
	var result []model.Format
	for _, f := range model.Formats() {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, 0, len(avail))
	for _, f := range avail {
		names = append(names, f.String())
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
