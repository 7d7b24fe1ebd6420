package postprocessors

import (
	"fmt"
	"sort"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Builder creates a processor from the chunking settings.
type Builder func(s domain.ChunkingSettings) (driven.PostProcessor, error)

// Registry maps processor names to builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds or replaces the builder for name.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Build creates the named processors, in order, as one pipeline.
// An unknown name is a configuration error.
func (r *Registry) Build(s domain.ChunkingSettings, names ...string) (*Pipeline, error) {
	procs := make([]driven.PostProcessor, 0, len(names))
	for _, name := range names {
		b, ok := r.builders[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown processor %q", domain.ErrInvalidConfig, name)
		}
		p, err := b(s)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		procs = append(procs, p)
	}
	return NewPipeline(procs...), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
