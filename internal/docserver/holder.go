package docserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/erraggy/asyncspec/builder"
	"github.com/erraggy/asyncspec/manifest"
	"github.com/erraggy/asyncspec/spec"
)

// Snapshot is one generated document. It is never modified after it is
// published by a Holder.
type Snapshot struct {
	Document  *spec.Document
	JSON      []byte
	YAML      []byte
	ETag      string
	Generated time.Time
	Stats     builder.Stats
	Warnings  []string
}

// Holder provides thread-safe access to the generated document with hot
// reload support.
type Holder struct {
	mu       sync.RWMutex
	snap     *Snapshot
	reloadMu sync.Mutex

	path     string
	opts     []builder.Option
	logger   zerolog.Logger
	metrics  *Metrics
	watcher  *fsnotify.Watcher
	onChange []func(*Snapshot)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder creates a holder and generates the initial snapshot from the
// manifest at path. metrics may be nil.
func NewHolder(ctx context.Context, path string, logger zerolog.Logger, metrics *Metrics, opts ...builder.Option) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("docserver: absolute path: %w", err)
	}

	h := &Holder{
		path:    absPath,
		opts:    opts,
		logger:  logger.With().Str("component", "docserver").Logger(),
		metrics: metrics,
		stopCh:  make(chan struct{}),
	}
	snap, err := h.generate(ctx)
	if err != nil {
		return nil, err
	}
	h.snap = snap
	return h, nil
}

// Path returns the absolute manifest path.
func (h *Holder) Path() string { return h.path }

// Get returns the current snapshot.
func (h *Holder) Get() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// Metrics returns the metrics the holder records into, or nil.
func (h *Holder) Metrics() *Metrics { return h.metrics }

// Reload regenerates the document from disk.
// On failure the previous snapshot is kept and the error returned.
func (h *Holder) Reload(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	h.logger.Info().Str("path", h.path).Msg("regenerating document")
	snap, err := h.generate(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("regeneration failed, keeping previous document")
		return err
	}

	h.mu.Lock()
	old := h.snap
	h.snap = snap
	listeners := h.onChange
	h.mu.Unlock()

	if old != nil && old.ETag == snap.ETag {
		h.logger.Debug().Msg("document unchanged")
		return nil
	}
	for _, fn := range listeners {
		fn(snap)
	}
	h.logger.Info().Str("etag", snap.ETag).Msg("document regenerated")
	return nil
}

// OnChange registers a callback run after a reload produces a different
// document.
func (h *Holder) OnChange(fn func(*Snapshot)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFile starts watching the manifest for changes.
// Changes trigger automatic reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("docserver: create watcher: %w", err)
	}

	// The directory is watched so editors that save by rename are seen.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("docserver: watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching manifest for changes")
	return nil
}

// Stop stops watching for file changes. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			_ = h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			h.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("manifest changed")
			if err := h.Reload(context.Background()); err != nil {
				h.logger.Error().Err(err).Msg("file watch reload failed")
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) generate(ctx context.Context) (snap *Snapshot, err error) {
	start := time.Now()
	defer func() { h.metrics.observe(time.Since(start), snap, err) }()

	res, err := manifest.Load(h.path)
	if err != nil {
		return nil, fmt.Errorf("docserver: %w", err)
	}
	out, err := res.Build(ctx, h.opts...)
	if err != nil {
		return nil, fmt.Errorf("docserver: %w", err)
	}
	jsonData, err := out.Document.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("docserver: encode json: %w", err)
	}
	yamlData, err := out.Document.ToYAML()
	if err != nil {
		return nil, fmt.Errorf("docserver: encode yaml: %w", err)
	}

	sum := sha256.Sum256(jsonData)
	return &Snapshot{
		Document:  out.Document,
		JSON:      jsonData,
		YAML:      yamlData,
		ETag:      `"` + hex.EncodeToString(sum[:]) + `"`,
		Generated: time.Now().UTC(),
		Stats:     out.Stats,
		Warnings:  out.Warnings,
	}, nil
}
