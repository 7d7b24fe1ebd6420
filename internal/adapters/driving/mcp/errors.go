// Package mcp serves the knowledge base to assistants over the Model
// Context Protocol, on stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingQueryService is returned by NewServer when Ports.Query is nil.
var ErrMissingQueryService = errors.New("mcp: query service is required")
