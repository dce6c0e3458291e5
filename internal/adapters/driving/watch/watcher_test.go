package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// recordingPipeline records processed requests.
type recordingPipeline struct {
	mu   sync.Mutex
	reqs []domain.ProcessRequest
}

func (r *recordingPipeline) Normalise(_ context.Context, text string, _ domain.NormaliseOptions) (string, error) {
	return text, nil
}

func (r *recordingPipeline) Chunk(_ context.Context, _ string, _ domain.NormaliseOptions) ([]domain.Chunk, error) {
	return nil, nil
}

func (r *recordingPipeline) Process(_ context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return &domain.ProcessResult{DocumentID: req.DocumentID}, nil
}

func (r *recordingPipeline) Status(_ context.Context, _ string) (*domain.DocumentStatus, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingPipeline) sources() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.reqs))
	for i, req := range r.reqs {
		out[i] = req.Context.Source
	}
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	t.Run("nil pipeline", func(t *testing.T) {
		_, err := New(dir, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(dir, "nope"), &recordingPipeline{})
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		f := filepath.Join(dir, "a.txt")
		writeFile(t, f, "x")
		_, err := New(f, &recordingPipeline{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := New(dir, &recordingPipeline{}, WithPattern("[a-"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestWatcher_Matches(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, &recordingPipeline{}, WithPattern("inbox/**/*.txt"))
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"inbox/a.txt", true},
		{"inbox/deep/b.txt", true},
		{filepath.Join(dir, "inbox", "c.txt"), true},
		{"inbox/a.md", false},
		{"outbox/a.txt", false},
		{"inbox/.hidden.txt", false},
		{filepath.Join(filepath.Dir(dir), "inbox", "a.txt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Matches(tt.path))
		})
	}
}

func TestWatcher_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "first invoice")
	writeFile(t, filepath.Join(dir, "sub", "b.TXT"), "ignored by case")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "second invoice")
	writeFile(t, filepath.Join(dir, "empty.txt"), "   ")
	writeFile(t, filepath.Join(dir, "notes.md"), "not matched")

	pipeline := &recordingPipeline{}
	var failed []string
	w, err := New(dir, pipeline,
		WithContext(domain.ProcessingContext{BusinessID: "biz"}),
		OnResult(func(path string, _ *domain.ProcessResult, err error) {
			if err != nil {
				failed = append(failed, filepath.Base(path))
			}
		}),
	)
	require.NoError(t, err)

	require.NoError(t, w.Scan(context.Background()))

	assert.ElementsMatch(t, []string{
		filepath.Join(w.Root(), "a.txt"),
		filepath.Join(w.Root(), "sub", "c.txt"),
	}, pipeline.sources())
	assert.Equal(t, []string{"empty.txt"}, failed)

	for _, req := range pipeline.reqs {
		assert.Equal(t, "biz", req.Context.BusinessID)
		assert.Equal(t, "txt", req.Context.FileFormat)
		assert.Equal(t, DocumentID(req.Context.Source), req.DocumentID)
	}
}

func TestWatcher_ScanExtractsFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.md"), "# Notes\n\nShip **ten** crates.")
	writeFile(t, filepath.Join(dir, "page.html"), "<html><body><p>Order packed</p><script>x()</script></body></html>")

	pipeline := &recordingPipeline{}
	w, err := New(dir, pipeline, WithPattern("*.{md,html}"))
	require.NoError(t, err)
	require.NoError(t, w.Scan(context.Background()))

	texts := make(map[string]string)
	for _, req := range pipeline.reqs {
		texts[req.Context.FileFormat] = req.Text
	}
	assert.Equal(t, "Notes\n\nShip ten crates.", texts["md"])
	assert.Equal(t, "Order packed", texts["html"])
}

func TestWatcher_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, &recordingPipeline{})
	require.NoError(t, err)

	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "hello")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create", fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{"write and chmod", fsnotify.Event{Name: file, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"remove", fsnotify.Event{Name: file, Op: fsnotify.Remove}, false},
		{"chmod only", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"directory", fsnotify.Event{Name: sub, Op: fsnotify.Create}, false},
		{"vanished", fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := w.handleEvent(tt.event)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "existing.txt"), "already here")

	pipeline := &recordingPipeline{}
	w, err := New(dir, pipeline, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return len(pipeline.sources()) == 1 },
		2*time.Second, 10*time.Millisecond)

	writeFile(t, filepath.Join(dir, "new.txt"), "fresh document")

	require.Eventually(t, func() bool { return len(pipeline.sources()) == 2 },
		2*time.Second, 10*time.Millisecond)
	assert.Equal(t, filepath.Join(w.Root(), "new.txt"), pipeline.sources()[1])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestDocumentID_Stable(t *testing.T) {
	assert.Equal(t, DocumentID("/tmp/a.txt"), DocumentID("/tmp/a.txt"))
	assert.NotEqual(t, DocumentID("/tmp/a.txt"), DocumentID("/tmp/b.txt"))
}

func TestDebouncer_Collapses(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var mu sync.Mutex
	calls := 0
	for range 5 {
		d.add("k", func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestWatcher_RunSkipScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "existing.txt"), "already here")

	pipeline := &recordingPipeline{}
	w, err := New(dir, pipeline, WithSkipScan(true), WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))
	assert.Empty(t, pipeline.sources())
}
