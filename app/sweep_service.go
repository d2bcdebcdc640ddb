package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"betweenstats/domain/core"
	"betweenstats/internal"
	"betweenstats/ports"
)

// SweepService compares one group column against many numeric columns of a
// data source. Each column comparison is an independent analysis, so they
// run concurrently under a weighted semaphore.
type SweepService struct {
	comparer *CompareService
	logger   *internal.Logger
	sem      *semaphore.Weighted
}

// SweepRequest defines the inputs of a column sweep
type SweepRequest struct {
	GroupColumn  string   `json:"group_column"`
	ValueColumns []string `json:"value_columns"`
	Options      Options  `json:"options"`
}

// SweepResult contains the per-column analyses of a sweep. Columns that
// failed carry their error message instead of an analysis.
type SweepResult struct {
	SweepID   core.ID              `json:"sweep_id"`
	Analyses  map[string]*Analysis `json:"analyses"`
	Failures  map[string]string    `json:"failures,omitempty"`
	RuntimeMs int64                `json:"runtime_ms"`
}

// NewSweepService creates a sweep service with the given concurrency bound.
func NewSweepService(comparer *CompareService, concurrency int) *SweepService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SweepService{
		comparer: comparer,
		logger:   internal.DefaultLogger,
		sem:      semaphore.NewWeighted(int64(concurrency)),
	}
}

// Run executes the sweep. A failed column does not abort the others; the
// only fatal error is a cancelled context.
func (s *SweepService) Run(ctx context.Context, src ports.DataSource, req SweepRequest) (*SweepResult, error) {
	start := time.Now()
	result := &SweepResult{
		SweepID:  core.NewID(),
		Analyses: make(map[string]*Analysis, len(req.ValueColumns)),
		Failures: make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, col := range req.ValueColumns {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(col string) {
			defer wg.Done()
			defer s.sem.Release(1)

			analysis, err := s.comparer.CompareSource(ctx, src, col, req.GroupColumn, req.Options)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("sweep %s: column %s failed: %v", result.SweepID, col, err)
				result.Failures[col] = err.Error()
				return
			}
			result.Analyses[col] = analysis
		}(col)
	}
	wg.Wait()

	result.RuntimeMs = time.Since(start).Milliseconds()
	s.logger.Info("sweep %s: %d columns analyzed, %d failed in %dms",
		result.SweepID, len(result.Analyses), len(result.Failures), result.RuntimeMs)
	return result, nil
}
