package mcp

import (
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

// Ports are the core services behind the tool and resources.
type Ports struct {
	// Query answers search_knowledge_base calls. Required.
	Query driving.QueryService

	// KnowledgeBase backs kb://stats and kb://runs. When nil both
	// resources report not found.
	KnowledgeBase driving.KnowledgeBase

	// TopK applies when a call leaves top_k unset. Zero means domain.DefaultTopK.
	TopK int
}

// Validate reports a missing Query service.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
