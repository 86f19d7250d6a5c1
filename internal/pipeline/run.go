// Package pipeline evaluates batches of transcripts concurrently.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/speech-coach/internal/ingestion"
	"github.com/jonathan/speech-coach/internal/types"
)

// DefaultConcurrency is used when Options.Concurrency is not positive
const DefaultConcurrency = 4

// Evaluator turns a transcript into a report. *coach.Coach implements it.
type Evaluator interface {
	Evaluate(text string) *types.Report
}

// Input is one transcript to evaluate
type Input struct {
	Name string
	Text string
}

// Result is the outcome for one input. Exactly one of Report and Err is set.
type Result struct {
	Index  int
	Name   string
	Report *types.Report
	Err    error
}

// ProgressEvent reports a finished document
type ProgressEvent struct {
	Name  string `json:"name"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// ProgressCallback is called after each document, possibly from several goroutines at once
type ProgressCallback func(event ProgressEvent)

// Options configures a batch run
type Options struct {
	Concurrency int
	// MinWords rejects transcripts with fewer whitespace-separated words (see ingestion.CheckLength)
	MinWords   int
	OnProgress ProgressCallback
}

// EvaluateAll evaluates docs with bounded concurrency. Results keep input order.
// Per-document failures are reported in Result.Err; the returned error is non-nil
// only when ctx is cancelled before the batch completes.
func EvaluateAll(ctx context.Context, ev Evaluator, docs []Input, opts Options) ([]Result, error) {
	loaders := make([]loader, len(docs))
	for i, doc := range docs {
		loaders[i] = loader{name: doc.Name, load: func() (string, error) {
			return ingestion.CleanText(doc.Text), nil
		}}
	}
	return run(ctx, ev, loaders, opts)
}

// EvaluateFiles reads each path with ingestion.FromFile and evaluates it.
// Read errors are reported per file.
func EvaluateFiles(ctx context.Context, ev Evaluator, paths []string, opts Options) ([]Result, error) {
	loaders := make([]loader, len(paths))
	for i, path := range paths {
		loaders[i] = loader{name: path, load: func() (string, error) {
			doc, err := ingestion.FromFile(path)
			if err != nil {
				return "", err
			}
			return doc.Text, nil
		}}
	}
	return run(ctx, ev, loaders, opts)
}

type loader struct {
	name string
	load func() (string, error)
}

func run(ctx context.Context, ev Evaluator, loaders []loader, opts Options) ([]Result, error) {
	if ev == nil {
		return nil, errors.New("evaluator is required")
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(loaders))
	var (
		mu   sync.Mutex
		done int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, l := range loaders {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res := Result{Index: i, Name: l.name}
			text, err := l.load()
			if err == nil {
				err = ingestion.CheckLength(text, opts.MinWords)
			}
			if err != nil {
				res.Err = err
			} else {
				res.Report = ev.Evaluate(text)
			}
			results[i] = res

			if opts.OnProgress != nil {
				mu.Lock()
				done++
				event := ProgressEvent{Name: l.name, Done: done, Total: len(loaders)}
				mu.Unlock()
				if res.Err != nil {
					event.Error = res.Err.Error()
				}
				opts.OnProgress(event)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed returns the results carrying an error
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
