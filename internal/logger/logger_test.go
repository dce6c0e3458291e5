package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func()
		verbose string
		quiet   string
	}{
		{"debug", func() { Debug("chunk %d", 3) }, "[DEBUG] chunk 3\n", ""},
		{"info", func() { Info("saved %s", "biz") }, "[INFO] saved biz\n", ""},
		{"warn", func() { Warn("retry %d", 2) }, "[WARN] retry 2\n", ""},
		{"section", func() { Section("Normalise") }, "\n=== Normalise ===\n", ""},
		{"error", func() { Error("failed: %s", "boom") }, "[ERROR] failed: boom\n", "[ERROR] failed: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.verbose, buf.String())
		})
		t.Run(tt.name+"/quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log()
			assert.Equal(t, tt.quiet, buf.String())
		})
	}
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(1500 * time.Millisecond)}
	now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}
	t.Cleanup(func() { now = time.Now })

	done := Timed("embedding")
	done()

	assert.Equal(t, "\n=== embedding ===\n[DEBUG] embedding took 1.5s\n", buf.String())
}
