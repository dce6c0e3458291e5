package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNormaliseOptions(t *testing.T) {
	opts := DefaultNormaliseOptions()
	assert.True(t, opts.ConvertWords)
	assert.True(t, opts.RemoveEmojis)
	assert.False(t, opts.ReplaceWithPlaceholders)
}

func TestProcessRequest_DecodesWireNames(t *testing.T) {
	raw := `{
		"document_id": "doc-1",
		"text": "qty 10 pcs",
		"options": {"convert_words": true, "replace_with_placeholders": true},
		"context": {"business_id": "biz-9", "file_format": "txt"}
	}`

	var req ProcessRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	assert.Equal(t, "doc-1", req.DocumentID)
	assert.Equal(t, "qty 10 pcs", req.Text)
	assert.True(t, req.Options.ConvertWords)
	assert.False(t, req.Options.RemoveEmojis)
	assert.True(t, req.Options.ReplaceWithPlaceholders)
	assert.Equal(t, "biz-9", req.Context.BusinessID)
	assert.Equal(t, "txt", req.Context.FileFormat)
}
