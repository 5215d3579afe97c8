package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	tt "github.com/gnolang/jdlint/internal/types"
	"go.uber.org/zap"
)

const watchDebounce = 100 * time.Millisecond

// ReportFunc receives the issues of a file re-linted by a Watcher.
type ReportFunc func(filename string, issues []tt.Issue)

// Watcher re-runs an Engine on Java files as they change.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	report  ReportFunc

	// quiet period after the last event of a file before it is re-linted
	debounce time.Duration
}

// NewWatcher creates a watcher. Directories are added with Add.
func NewWatcher(engine *Engine, logger *zap.Logger, report ReportFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if report == nil {
		report = logIssues(logger)
	}
	return &Watcher{
		engine:   engine,
		watcher:  fw,
		logger:   logger,
		report:   report,
		debounce: watchDebounce,
	}, nil
}

// Add watches dir and every directory below it.
func (w *Watcher) Add(dir string) error {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Run processes file events until ctx is done or the watcher is closed.
// Changed files are collected until no event arrives for the debounce period
// and are then re-linted once each, in name order.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if name := w.handleFileEvent(event); name != "" {
				pending[name] = struct{}{}
				flush = time.After(w.debounce)
			}
		case <-flush:
			w.lintPending(pending)
			pending = make(map[string]struct{})
			flush = nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// handleFileEvent returns the Java file that needs re-linting for event, or
// "" if none. Newly created directories are added to the watch list.
func (w *Watcher) handleFileEvent(event fsnotify.Event) string {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Error("Error watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return ""
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}
	if filepath.Ext(event.Name) != ".java" {
		return ""
	}
	return event.Name
}

func (w *Watcher) lintPending(pending map[string]struct{}) {
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w.lintFile(name)
	}
}

func (w *Watcher) lintFile(filename string) {
	issues, err := w.engine.Run(filename)
	if err != nil {
		w.logger.Error("Error processing file", zap.String("file", filename), zap.Error(err))
		return
	}
	w.report(filename, issues)
}

func logIssues(logger *zap.Logger) ReportFunc {
	return func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			logger.Info("No issues found", zap.String("file", filename))
			return
		}
		logger.Info("Found issues", zap.String("file", filename), zap.Int("count", len(issues)))
		for _, issue := range issues {
			logger.Info(issue.Message,
				zap.String("rule", issue.Rule),
				zap.Int("line", issue.Start.Line),
			)
		}
	}
}
