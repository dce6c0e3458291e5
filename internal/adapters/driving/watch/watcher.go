// Package watch processes text files as they appear under a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
	"github.com/custodia-labs/textprep/internal/extract"
	"github.com/custodia-labs/textprep/internal/logger"
)

// DefaultPattern matches plain text files at any depth.
const DefaultPattern = "**/*.txt"

// DefaultDebounce is how long a path must be quiet before it is processed.
const DefaultDebounce = 200 * time.Millisecond

// ResultFunc is called after each file is processed.
type ResultFunc func(path string, res *domain.ProcessResult, err error)

// Watcher feeds matching files under a root directory to the pipeline.
type Watcher struct {
	root     string
	pattern  string
	pipeline driving.PipelineService
	options  domain.NormaliseOptions
	base     domain.ProcessingContext
	debounce time.Duration
	skipScan bool
	onResult ResultFunc
	formats  *extract.Registry
}

// Option configures the watcher.
type Option func(*Watcher)

// WithPattern sets the doublestar pattern relative paths must match.
func WithPattern(pattern string) Option {
	return func(w *Watcher) {
		if pattern != "" {
			w.pattern = pattern
		}
	}
}

// WithNormaliseOptions sets the options each file is normalised with.
func WithNormaliseOptions(opts domain.NormaliseOptions) Option {
	return func(w *Watcher) {
		w.options = opts
	}
}

// WithContext sets the processing context stamped on every file.
// Source and FileFormat are filled in per file.
func WithContext(pc domain.ProcessingContext) Option {
	return func(w *Watcher) {
		w.base = pc
	}
}

// WithDebounce sets the quiet period before a changed file is processed.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithSkipScan makes Run ignore files that exist before it starts.
func WithSkipScan(skip bool) Option {
	return func(w *Watcher) {
		w.skipScan = skip
	}
}

// WithExtractors replaces the registry used to turn files into text.
func WithExtractors(r *extract.Registry) Option {
	return func(w *Watcher) {
		if r != nil {
			w.formats = r
		}
	}
}

// OnResult registers a callback for processed files.
func OnResult(fn ResultFunc) Option {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// New creates a watcher for root. The pattern is validated up front.
func New(root string, pipeline driving.PipelineService, opts ...Option) (*Watcher, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline service is required", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	w := &Watcher{
		root:     abs,
		pattern:  DefaultPattern,
		pipeline: pipeline,
		options:  domain.DefaultNormaliseOptions(),
		debounce: DefaultDebounce,
		formats:  extract.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if !doublestar.ValidatePattern(w.pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", domain.ErrInvalidInput, w.pattern)
	}
	return w, nil
}

// Root returns the absolute directory being watched.
func (w *Watcher) Root() string {
	return w.root
}

// Matches reports whether path (absolute or relative to the root) is a
// file the watcher processes. Hidden files never match.
func (w *Watcher) Matches(path string) bool {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(w.root, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(filepath.Base(rel), ".") {
		return false
	}
	ok, err := doublestar.Match(w.pattern, rel)
	return err == nil && ok
}

// Scan processes every file that already matches.
func (w *Watcher) Scan(ctx context.Context) error {
	matches, err := doublestar.Glob(os.DirFS(w.root), w.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("scan %s: %w", w.root, err)
	}
	logger.Debug("initial scan found %d files", len(matches))

	for _, rel := range matches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		path := filepath.Join(w.root, filepath.FromSlash(rel))
		if w.Matches(path) {
			w.process(ctx, path)
		}
	}
	return nil
}

// Run scans existing files unless told not to, then processes created and written files until
// the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	if !w.skipScan {
		if err := w.Scan(ctx); err != nil {
			return err
		}
	}

	due := make(chan string, 64)
	deb := newDebouncer(w.debounce)
	defer deb.stop()

	logger.Info("watching %s for %s", w.root, w.pattern)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if w.handleDir(watcher, event) {
				continue
			}
			if path, ok := w.handleEvent(event); ok {
				deb.add(path, func() {
					select {
					case due <- path:
					case <-ctx.Done():
					}
				})
			}

		case path := <-due:
			w.process(ctx, path)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			logger.Error("fsnotify error: %v", werr)
		}
	}
}

// handleEvent returns the path to process for an event, if any.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	if !w.Matches(event.Name) {
		return "", false
	}
	return event.Name, true
}

// handleDir starts watching newly created directories.
func (w *Watcher) handleDir(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := w.addRecursive(watcher, event.Name); err != nil {
		logger.Warn("watch %s: %v", event.Name, err)
	}
	return true
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// process reads one file and submits it. Failures are reported, not returned.
func (w *Watcher) process(ctx context.Context, path string) {
	res, err := w.submit(ctx, path)
	if err != nil {
		logger.Warn("process %s: %v", path, err)
	}
	if w.onResult != nil {
		w.onResult(path, res, err)
	}
}

func (w *Watcher) submit(ctx context.Context, path string) (*domain.ProcessResult, error) {
	doc, err := w.formats.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}

	pc := w.base
	pc.Source = path
	pc.FileFormat = doc.Format

	return w.pipeline.Process(ctx, domain.ProcessRequest{
		DocumentID: DocumentID(path),
		Text:       doc.Text,
		Options:    w.options,
		Context:    pc,
	})
}

// DocumentID derives a stable document ID from a file path so that
// reprocessing a file replaces its chunks.
func DocumentID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).String()
}

// debouncer collapses bursts of events per key into one call.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) add(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
