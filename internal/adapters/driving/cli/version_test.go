package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	saved := version
	defer func() { version = saved }()

	for _, v := range []string{"dev", "1.4.0"} {
		t.Run(v, func(t *testing.T) {
			SetVersion(v)
			out, err := execute(t, "", "version")
			require.NoError(t, err)
			assert.Equal(t, "textprep version "+v+"\n", out)
		})
	}
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	servicesSet = false
	called := false
	SetBootstrap(func(string) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "textprep version")
	assert.False(t, called)
}
