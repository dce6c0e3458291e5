package services

import (
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailableAddr(t *testing.T) {
	addr, err := FindAvailableAddr("127.0.0.1:41000", DefaultPortSpan)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "127.0.0.1:"))
}

func TestFindAvailableAddr_SkipsBusyPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	busy := l.Addr().(*net.TCPAddr).Port

	_, err = FindAvailableAddr(net.JoinHostPort("127.0.0.1", strconv.Itoa(busy)), 0)
	assert.Error(t, err)
}

func TestFindAvailableAddr_BadAddress(t *testing.T) {
	for _, addr := range []string{"nonsense", "127.0.0.1:http"} {
		_, err := FindAvailableAddr(addr, 1)
		assert.Error(t, err, addr)
	}
}
