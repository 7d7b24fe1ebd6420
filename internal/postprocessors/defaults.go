package postprocessors

import (
	"fmt"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/postprocessors/chunker"
	"github.com/22Ujjwal/Multimodal-Agent/internal/postprocessors/minlength"
)

// Processor names.
const (
	NameChunker   = "chunker"
	NameMinLength = "min_length"
)

// DefaultOrder is the processor chain used for indexing.
var DefaultOrder = []string{NameChunker, NameMinLength}

// RegisterDefaults registers the built-in processors.
func RegisterDefaults(r *Registry) {
	r.Register(NameChunker, buildChunker)
	r.Register(NameMinLength, buildMinLength)
}

// NewDefaultPipeline builds the chunker followed by the minimum-length filter.
func NewDefaultPipeline(s domain.ChunkingSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.Build(s, DefaultOrder...)
}

func buildChunker(s domain.ChunkingSettings) (driven.PostProcessor, error) {
	switch {
	case s.Size <= 0:
		return nil, fmt.Errorf("%w: chunk size %d", domain.ErrInvalidConfig, s.Size)
	case s.Overlap < 0 || s.Overlap >= s.Size:
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidConfig, s.Overlap, s.Size)
	}
	return chunker.New(chunker.WithChunkSize(s.Size), chunker.WithOverlap(s.Overlap)), nil
}

func buildMinLength(s domain.ChunkingSettings) (driven.PostProcessor, error) {
	if s.MinLength < 0 {
		return nil, fmt.Errorf("%w: min_length %d", domain.ErrInvalidConfig, s.MinLength)
	}
	return minlength.New(s.MinLength), nil
}
