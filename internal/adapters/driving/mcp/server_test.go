package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil pipeline service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPipelineService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.Equal(t, domain.DefaultNormaliseOptions(), server.options)
	})

	t.Run("normalise options override", func(t *testing.T) {
		opts := domain.NormaliseOptions{ReplaceWithPlaceholders: true}
		server, err := NewServer(&Ports{Pipeline: &mockPipelineService{}}, WithNormaliseOptions(opts))
		require.NoError(t, err)
		assert.Equal(t, opts, server.options)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil pipeline service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingPipelineService)
	})

	t.Run("pipeline only is valid", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Pipeline: &mockPipelineService{},
			Profile:  &mockProfileService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
