package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for textprep resources.
	uriScheme = "textprep://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Profile == nil {
		return
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "profiles/{businessId}",
		Name:        "noise-profile",
		Description: "Learnt noise words for a business",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// handleProfileResource returns the noise profile named by the URI.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	businessID := extractBusinessID(req.Params.URI)
	if businessID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Profile.Get(ctx, businessID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	data, err := json.MarshalIndent(profileOutput(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractBusinessID extracts the business ID from a URI like textprep://profiles/{businessId}.
func extractBusinessID(uri string) string {
	const prefix = uriScheme + "profiles/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
