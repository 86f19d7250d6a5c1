package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/speech-coach/internal/coach"
	"github.com/jonathan/speech-coach/internal/ingestion"
	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/pipeline"
	"github.com/jonathan/speech-coach/internal/server/middleware"
	"github.com/jonathan/speech-coach/internal/types"
)

// handleAnalyze evaluates a single transcript
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), errorMessage(err))
		return
	}
	req.Language = lexicon.NormalizeLanguage(req.Language)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), errorMessage(err))
		return
	}

	report, err := s.evaluate(req)
	if err != nil {
		s.errorResponse(w, r, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{
		RequestID: middleware.GetRequestID(r.Context()),
		Report:    report,
	})
}

// handleBatch evaluates up to types.MaxBatchItems transcripts concurrently
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeBatch(w, r)
	if !ok {
		return
	}

	results, err := s.evaluateBatch(r.Context(), req.Items, nil)
	if err != nil {
		s.errorResponse(w, r, http.StatusServiceUnavailable, "batch cancelled")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.BatchResponse{
		RequestID: middleware.GetRequestID(r.Context()),
		Results:   results,
	})
}

// handleBatchStream evaluates a batch and reports progress as Server-Sent Events:
// one "progress" event per item, then "result" and "complete".
func (s *Server) handleBatchStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeBatch(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	results, err := s.evaluateBatch(r.Context(), req.Items, func(e pipeline.ProgressEvent) {
		if werr := sse.WriteEvent("progress", e); werr != nil {
			s.log.WithError(werr).Debug("failed to write progress event")
		}
	})
	if err != nil {
		sse.WriteError("batch cancelled")
		return
	}

	if err := sse.WriteEvent("result", types.BatchResponse{RequestID: requestID, Results: results}); err != nil {
		s.log.WithError(err).Warn("failed to write result event")
		return
	}
	sse.WriteComplete(requestID, "completed")
}

// handleLanguages lists the languages the server can evaluate
func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	langs := make([]types.LanguageInfo, 0, len(s.coaches))
	for code, c := range s.coaches {
		info := types.LanguageInfo{Code: code, Default: code == s.defaultLanguage}
		if pack := c.Pack(); pack != nil {
			info.Name = pack.Name
		}
		langs = append(langs, info)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })

	s.jsonResponse(w, http.StatusOK, map[string]any{"languages": langs})
}

// decode reads a JSON body of at most MaxBodyBytes into v
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

func (s *Server) decodeBatch(w http.ResponseWriter, r *http.Request) (*types.BatchRequest, bool) {
	var req types.BatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), errorMessage(err))
		return nil, false
	}
	for i := range req.Items {
		req.Items[i].Language = lexicon.NormalizeLanguage(req.Items[i].Language)
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), errorMessage(err))
		return nil, false
	}
	return &req, true
}

// coachFor returns the coach for lang, or the default language when lang is empty
func (s *Server) coachFor(lang string) (*coach.Coach, error) {
	if lang == "" {
		lang = s.defaultLanguage
	}
	c, ok := s.coaches[lang]
	if !ok {
		return nil, &lexicon.NotFoundError{Language: lang}
	}
	return c, nil
}

func (s *Server) evaluate(req types.AnalyzeRequest) (*types.Report, error) {
	c, err := s.coachFor(req.Language)
	if err != nil {
		return nil, err
	}
	text := ingestion.CleanText(req.Text)
	if err := ingestion.CheckLength(text, s.minWords); err != nil {
		return nil, err
	}
	return c.Evaluate(text), nil
}

// evaluateBatch groups items by language and runs each group through the pipeline.
// Results are indexed by position in items. onProgress may be nil.
func (s *Server) evaluateBatch(ctx context.Context, items []types.AnalyzeRequest, onProgress pipeline.ProgressCallback) ([]types.BatchItemResult, error) {
	results := make([]types.BatchItemResult, len(items))
	groups := make(map[string][]int)
	for i, item := range items {
		results[i].Index = i
		lang := item.Language
		if lang == "" {
			lang = s.defaultLanguage
		}
		groups[lang] = append(groups[lang], i)
	}

	var (
		mu   sync.Mutex
		done int
	)
	progress := func(name string, errMsg string) {
		if onProgress == nil {
			return
		}
		mu.Lock()
		done++
		event := pipeline.ProgressEvent{Name: name, Done: done, Total: len(items), Error: errMsg}
		onProgress(event)
		mu.Unlock()
	}

	for lang, indices := range groups {
		c, err := s.coachFor(lang)
		if err != nil {
			for _, i := range indices {
				results[i].Error = errorMessage(err)
				progress(itemName(i), results[i].Error)
			}
			continue
		}

		docs := make([]pipeline.Input, len(indices))
		for j, i := range indices {
			docs[j] = pipeline.Input{Name: itemName(i), Text: items[i].Text}
		}

		out, err := pipeline.EvaluateAll(ctx, c, docs, pipeline.Options{
			Concurrency: s.concurrency,
			MinWords:    s.minWords,
			OnProgress: func(e pipeline.ProgressEvent) {
				progress(e.Name, e.Error)
			},
		})
		if err != nil {
			return nil, err
		}

		for j, res := range out {
			i := indices[j]
			if res.Err != nil {
				results[i].Error = errorMessage(res.Err)
				continue
			}
			results[i].Report = res.Report
		}
		s.log.WithFields(logrus.Fields{
			"language": lang,
			"items":    len(indices),
			"failed":   len(pipeline.Failed(out)),
		}).Debug("evaluated batch group")
	}

	return results, nil
}

func itemName(i int) string {
	return fmt.Sprintf("item-%d", i)
}
