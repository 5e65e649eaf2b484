package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apiforge/commandgen/internal/config"
	"github.com/apiforge/commandgen/internal/generator"
	"github.com/fsnotify/fsnotify"
)

// inputWatcher regenerates the corpus whenever the input directory tree
// changes. Bursts of events (editors, git checkouts) are debounced into
// a single run.
type inputWatcher struct {
	cfg *config.Config
	gen *generator.Generator

	watcher  *fsnotify.Watcher
	stopChan chan struct{}

	regenTimer    *time.Timer
	regenMu       sync.Mutex
	regenDebounce time.Duration
}

func newInputWatcher(cfg *config.Config, gen *generator.Generator) (*inputWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &inputWatcher{
		cfg:      cfg,
		gen:      gen,
		watcher:  watcher,
		stopChan: make(chan struct{}),

		// Wait 2 seconds of quiet before regenerating
		regenDebounce: 2 * time.Second,
	}

	inputDir := cfg.GetGenerator().InputDir
	if err := watcher.Add(inputDir); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", inputDir, err)
	}
	w.watchSubdirectories(inputDir)

	return w, nil
}

func (w *inputWatcher) watchSubdirectories(root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && path != root {
			if err := w.watcher.Add(path); err != nil {
				slog.Warn("failed to watch directory", "dir", path, "error", err)
			}
		}
		return nil
	})
}

func (w *inputWatcher) run() {
	slog.Info("watching for changes", "dir", w.cfg.GetGenerator().InputDir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)
		case <-w.stopChan:
			_ = w.watcher.Close()
			return
		}
	}
}

func (w *inputWatcher) handleEvent(event fsnotify.Event) {
	// New version or service folders need their own watch.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				slog.Warn("failed to watch directory", "dir", event.Name, "error", err)
			}
		}
	}

	if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.scheduleRegeneration(event.Name)
	}
}

func (w *inputWatcher) scheduleRegeneration(trigger string) {
	w.regenMu.Lock()
	defer w.regenMu.Unlock()

	if w.regenTimer != nil {
		w.regenTimer.Stop()
	}

	slog.Info("change detected, regeneration scheduled", "path", trigger)
	w.regenTimer = time.AfterFunc(w.regenDebounce, func() {
		report, err := w.gen.Run()
		if err != nil {
			slog.Error("regeneration failed", "error", err)
			return
		}
		if report.HasErrors() {
			slog.Warn("regeneration finished with errors",
				"failedOperations", report.FailedOperations(),
				"validationErrors", report.ValidationErrors())
		}
	})
}

func (w *inputWatcher) stop() {
	w.regenMu.Lock()
	if w.regenTimer != nil {
		w.regenTimer.Stop()
		w.regenTimer = nil
	}
	w.regenMu.Unlock()

	close(w.stopChan)
}
