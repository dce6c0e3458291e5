// Package mcp exposes textprep over the Model Context Protocol so AI
// assistants can normalise text, process documents and read noise profiles.
package mcp

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("mcp: pipeline service is required")
