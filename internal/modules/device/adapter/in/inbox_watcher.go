package in

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	devicein "ritual/internal/modules/device/port/in"
)

const (
	inboxSuffix = ".jsonl"
	doneSuffix  = ".done"
	failSuffix  = ".failed"
)

// InboxWatcher ingests *.jsonl files dropped into a directory. A processed
// file is renamed to *.done, a rejected one to *.failed.
type InboxWatcher struct {
	dir      string
	usecase  devicein.Usecase
	logger   *zap.Logger
	debounce time.Duration
	pending  map[string]time.Time
}

func NewInboxWatcher(dir string, usecase devicein.Usecase, logger *zap.Logger) *InboxWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InboxWatcher{
		dir:      dir,
		usecase:  usecase,
		logger:   logger,
		debounce: 250 * time.Millisecond,
		pending:  map[string]time.Time{},
	}
}

// Run drains files already in the inbox, then watches until ctx is done.
func (w *InboxWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch inbox: %w", err)
	}
	if _, err := w.Drain(ctx); err != nil {
		return err
	}
	w.logger.Info("watching inbox", zap.String("dir", w.dir))

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, inboxSuffix) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.pending[event.Name] = time.Now()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("inbox watcher error", zap.Error(err))
		case now := <-ticker.C:
			for path, seen := range w.pending {
				if now.Sub(seen) < w.debounce {
					continue
				}
				delete(w.pending, path)
				w.process(ctx, path)
			}
		}
	}
}

// Drain processes every *.jsonl file currently in the inbox, oldest name first.
func (w *InboxWatcher) Drain(ctx context.Context) (int, error) {
	matches, err := filepath.Glob(filepath.Join(w.dir, "*"+inboxSuffix))
	if err != nil {
		return 0, fmt.Errorf("list inbox: %w", err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		w.process(ctx, path)
	}
	return len(matches), nil
}

func (w *InboxWatcher) process(ctx context.Context, path string) {
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("open inbox file", zap.String("path", path), zap.Error(err))
		}
		return
	}
	out, ingestErr := Ingest(ctx, file, w.usecase)
	_ = file.Close()

	target := strings.TrimSuffix(path, inboxSuffix) + doneSuffix
	if ingestErr != nil {
		target = strings.TrimSuffix(path, inboxSuffix) + failSuffix
		w.logger.Warn("inbox file rejected", zap.String("path", path), zap.Int("processed", out.Processed), zap.Error(ingestErr))
	} else {
		w.logger.Info("inbox file ingested", zap.String("path", path), zap.Int("processed", out.Processed), zap.Int("handled", out.Handled))
	}
	if err := os.Rename(path, target); err != nil {
		w.logger.Warn("archive inbox file", zap.String("path", path), zap.Error(err))
	}
}
