// Package watch evaluates transcripts dropped into a directory.
// Each created or modified *.txt file gets a <name>.feedback.json report next to it.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/speech-coach/internal/ingestion"
	"github.com/jonathan/speech-coach/internal/pipeline"
	"github.com/jonathan/speech-coach/internal/schemas"
	"github.com/jonathan/speech-coach/internal/types"
)

const (
	// TranscriptExt is the extension of watched transcript files
	TranscriptExt = ".txt"
	// FeedbackSuffix replaces TranscriptExt in report file names
	FeedbackSuffix = ".feedback.json"
	// DefaultDebounce coalesces the burst of write events an editor produces on save
	DefaultDebounce = 250 * time.Millisecond
)

// Options configures a Watcher
type Options struct {
	MinWords int
	Debounce time.Duration
	// ProcessExisting evaluates transcripts that have no report yet when Run starts
	ProcessExisting bool
	Concurrency     int
	Logger          logrus.FieldLogger
	// OnReport is called after each report is written
	OnReport func(path string, report *types.Report)
}

// Watcher evaluates transcripts as they appear in a directory
type Watcher struct {
	dir  string
	ev   pipeline.Evaluator
	opts Options
	log  logrus.FieldLogger

	mu      sync.Mutex
	pending map[string]*pendingRun
	wg      sync.WaitGroup
}

// New creates a Watcher for dir
func New(dir string, ev pipeline.Evaluator, opts Options) (*Watcher, error) {
	if ev == nil {
		return nil, errors.New("evaluator is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Watcher{
		dir:     dir,
		ev:      ev,
		opts:    opts,
		log:     log.WithField("dir", dir),
		pending: make(map[string]*pendingRun),
	}, nil
}

// IsTranscript reports whether path names a transcript the watcher should evaluate
func IsTranscript(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), TranscriptExt)
}

// OutputPath returns the report path written for a transcript
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + FeedbackSuffix
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.log.Info("watching for transcripts")

	if w.opts.ProcessExisting {
		if err := w.processExisting(ctx); err != nil {
			return err
		}
	}

	defer w.drain()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if IsTranscript(event.Name) {
					w.schedule(event.Name)
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

// Process evaluates one transcript and writes its report. It returns the report path.
func (w *Watcher) Process(path string) (string, error) {
	doc, err := ingestion.FromFile(path)
	if err != nil {
		return "", err
	}
	if err := ingestion.CheckLength(doc.Text, w.opts.MinWords); err != nil {
		return "", err
	}

	report := w.ev.Evaluate(doc.Text)
	return w.write(path, report)
}

func (w *Watcher) write(path string, report *types.Report) (string, error) {
	if err := schemas.ValidateReport(report); err != nil {
		w.log.WithError(err).WithField("file", path).Warn("report does not match schema")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	out := OutputPath(path)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	if w.opts.OnReport != nil {
		w.opts.OnReport(out, report)
	}
	return out, nil
}

type pendingRun struct {
	timer *time.Timer
}

// schedule processes path once no new event arrived for the debounce period
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if run, exists := w.pending[path]; exists && run.timer.Stop() {
		run.timer.Reset(w.opts.Debounce)
		return
	}

	run := &pendingRun{}
	w.wg.Add(1)
	run.timer = time.AfterFunc(w.opts.Debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[path] == run {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		w.handle(path)
	})
	w.pending[path] = run
}

func (w *Watcher) handle(path string) {
	log := w.log.WithField("file", filepath.Base(path))

	out, err := w.Process(path)
	switch {
	case errors.Is(err, ingestion.ErrEmptyText), errors.Is(err, ingestion.ErrTextTooShort):
		log.WithError(err).Info("skipped transcript")
	case err != nil:
		log.WithError(err).Error("failed to evaluate transcript")
	default:
		log.WithField("report", filepath.Base(out)).Info("wrote report")
	}
}

// drain cancels pending timers and waits for running evaluations
func (w *Watcher) drain() {
	w.mu.Lock()
	for path, run := range w.pending {
		if run.timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// Pending returns transcripts in the directory that have no report yet, sorted.
func (w *Watcher) Pending() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", w.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsTranscript(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if _, err := os.Stat(OutputPath(path)); err == nil {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *Watcher) processExisting(ctx context.Context) error {
	paths, err := w.Pending()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	results, err := pipeline.EvaluateFiles(ctx, w.ev, paths, pipeline.Options{
		Concurrency: w.opts.Concurrency,
		MinWords:    w.opts.MinWords,
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		log := w.log.WithField("file", filepath.Base(res.Name))
		if res.Err != nil {
			log.WithError(res.Err).Info("skipped transcript")
			continue
		}
		if _, err := w.write(res.Name, res.Report); err != nil {
			log.WithError(err).Error("failed to write report")
		}
	}
	w.log.WithFields(logrus.Fields{
		"files":  len(results),
		"failed": len(pipeline.Failed(results)),
	}).Info("processed existing transcripts")
	return nil
}
