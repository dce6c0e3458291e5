package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// NormaliseInput is the input schema for the normalise_text tool.
type NormaliseInput struct {
	Text         string `json:"text" jsonschema:"the raw text to normalise"`
	Placeholders bool   `json:"placeholders,omitempty" jsonschema:"mask PII such as emails, phones and account numbers"`
	KeepEmojis   bool   `json:"keep_emojis,omitempty" jsonschema:"replace emojis with a placeholder instead of deleting them"`
	KeepWords    bool   `json:"keep_words,omitempty" jsonschema:"leave number words such as 'five lakh' unconverted"`
}

// NormaliseOutput is the output schema for the normalise_text tool.
type NormaliseOutput struct {
	Text string `json:"text"`
}

// ProcessInput is the input schema for the process_document tool.
type ProcessInput struct {
	Text       string `json:"text" jsonschema:"the raw document text"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"document identifier; generated when empty"`
	BusinessID string `json:"business_id,omitempty" jsonschema:"tenant whose noise profile is updated"`
	Region     string `json:"business_region,omitempty" jsonschema:"tenant region"`
	DataType   string `json:"data_type,omitempty" jsonschema:"content classification"`
	FileFormat string `json:"file_format,omitempty" jsonschema:"source file format"`
}

// ProcessOutput is the output schema for the process_document tool.
type ProcessOutput struct {
	DocumentID string        `json:"document_id"`
	RunID      string        `json:"run_id"`
	ChunkCount int           `json:"chunk_count"`
	Chunks     []ChunkOutput `json:"chunks"`
}

// ChunkOutput is a chunk without its embedding vector.
type ChunkOutput struct {
	ID        int                    `json:"id"`
	Text      string                 `json:"text"`
	Keywords  []domain.RankedKeyword `json:"keywords,omitempty"`
	Sentiment string                 `json:"sentiment"`
	Embedded  bool                   `json:"embedded"`
}

// ProfileInput is the input schema for the get_noise_profile tool.
type ProfileInput struct {
	BusinessID string `json:"business_id" jsonschema:"the tenant identifier"`
}

// ProfileOutput is the output schema for the get_noise_profile tool.
type ProfileOutput struct {
	BusinessID  string   `json:"business_id"`
	NoiseWords  []string `json:"noise_words"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "normalise_text",
		Description: "Normalise raw text into its canonical form",
	}, s.handleNormalise)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_document",
		Description: "Normalise, chunk, annotate and embed a document",
	}, s.handleProcess)

	if s.ports.Profile != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_noise_profile",
			Description: "Get the learnt noise words for a business",
		}, s.handleProfile)
	}
}

// handleNormalise handles the normalise_text tool invocation.
func (s *Server) handleNormalise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NormaliseInput,
) (*mcp.CallToolResult, NormaliseOutput, error) {
	opts := domain.NormaliseOptions{
		ConvertWords:            !input.KeepWords,
		RemoveEmojis:            !input.KeepEmojis,
		ReplaceWithPlaceholders: input.Placeholders,
	}

	out, err := s.ports.Pipeline.Normalise(ctx, input.Text, opts)
	if err != nil {
		return nil, NormaliseOutput{}, err
	}
	return nil, NormaliseOutput{Text: out}, nil
}

// handleProcess handles the process_document tool invocation.
func (s *Server) handleProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessInput,
) (*mcp.CallToolResult, ProcessOutput, error) {
	req := domain.ProcessRequest{
		DocumentID: input.DocumentID,
		Text:       input.Text,
		Options:    s.options,
		Context: domain.ProcessingContext{
			BusinessID:     input.BusinessID,
			BusinessRegion: input.Region,
			DataType:       input.DataType,
			FileFormat:     input.FileFormat,
			Source:         "mcp",
		},
	}

	res, err := s.ports.Pipeline.Process(ctx, req)
	if err != nil {
		return nil, ProcessOutput{}, err
	}

	output := ProcessOutput{
		DocumentID: res.DocumentID,
		RunID:      res.RunID,
		ChunkCount: len(res.Chunks),
		Chunks:     make([]ChunkOutput, len(res.Chunks)),
	}
	for i := range res.Chunks {
		c := &res.Chunks[i]
		output.Chunks[i] = ChunkOutput{
			ID:        c.ID,
			Text:      c.Text,
			Keywords:  c.Metadata.RankedKeywords,
			Sentiment: string(c.Sentiment.Label),
			Embedded:  len(c.Embedding) > 0,
		}
	}
	return nil, output, nil
}

// handleProfile handles the get_noise_profile tool invocation.
func (s *Server) handleProfile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProfileInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	p, err := s.ports.Profile.Get(ctx, input.BusinessID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ProfileOutput{BusinessID: input.BusinessID, NoiseWords: []string{}}, nil
	}
	if err != nil {
		return nil, ProfileOutput{}, err
	}
	return nil, profileOutput(p), nil
}

func profileOutput(p *domain.NoiseProfile) ProfileOutput {
	out := ProfileOutput{BusinessID: p.BusinessID, NoiseWords: p.NoiseWords}
	if out.NoiseWords == nil {
		out.NoiseWords = []string{}
	}
	if !p.LastUpdated.IsZero() {
		out.LastUpdated = p.LastUpdated.UTC().Format("2006-01-02T15:04:05Z")
	}
	return out
}
