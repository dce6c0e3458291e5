package mcp

import (
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline normalises and processes documents.
	Pipeline driving.PipelineService

	// Profile reads tenant noise profiles. Optional.
	Profile driving.ProfileService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	return nil
}
