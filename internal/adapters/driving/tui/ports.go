// Package tui is the interactive menu shown when kb runs on a terminal
// without a subcommand. Setup and self-test are returned to the caller as
// actions; questions are answered inside the menu when a QueryService is
// available.
package tui

import (
	"errors"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

// ErrNilPorts is returned by Run when ports is nil.
var ErrNilPorts = errors.New("tui: ports are required")

// Ports is what the menu needs from the core.
type Ports struct {
	// Query answers questions in the query view. When nil the view is not offered.
	Query driving.QueryService

	// TopK is the number of results per question (default: 5).
	TopK int
}

// Validate reports whether the menu can start with these ports.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrNilPorts
	}
	return nil
}
