package capd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendsim/capacity-core/internal/verdict"
	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/logger"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrAnalysisDone     = errors.New("analysis already finished")
)

// Executor runs stored analyses asynchronously
type Executor struct {
	store    *Store
	analyzer *verdict.Analyzer
	metrics  *Metrics
	timeout  time.Duration
}

// NewExecutor creates an executor over the given store. metrics may be nil.
func NewExecutor(store *Store, metrics *Metrics) *Executor {
	return &Executor{
		store:    store,
		analyzer: verdict.New(),
		metrics:  metrics,
		timeout:  config.DefaultSimulationBatchLimit,
	}
}

// SetTimeout overrides the per-analysis batch timeout
func (e *Executor) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Start begins executing the analysis asynchronously and returns the
// running record. Finished analyses cannot be restarted; their results are
// immutable once produced.
func (e *Executor) Start(id string) (*AnalysisRecord, error) {
	rec, ok := e.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}

	switch rec.Status {
	case StatusRunning:
		return rec, nil
	case StatusCompleted, StatusFailed:
		return nil, fmt.Errorf("%w: %s", ErrAnalysisDone, id)
	}

	if err := e.store.MarkRunning(id); err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.AnalysesStarted.Inc()
	}

	go e.run(id, rec.Config)

	rec, _ = e.store.Get(id)
	return rec, nil
}

// run executes one analysis to completion and records the outcome
func (e *Executor) run(id string, cfg *config.AnalysisConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	started := time.Now()
	v, err := e.analyzer.Analyze(ctx, cfg)
	elapsed := time.Since(started)

	if err != nil {
		logger.Error("analysis failed", "analysis_id", id, "error", err)
		if storeErr := e.store.Fail(id, err); storeErr != nil {
			logger.Error("failed to record analysis failure", "analysis_id", id, "error", storeErr)
		}
		e.observe(string(StatusFailed), elapsed)
		return
	}

	if storeErr := e.store.Complete(id, v); storeErr != nil {
		logger.Error("failed to record analysis result", "analysis_id", id, "error", storeErr)
		return
	}
	logger.Info("analysis finished", "analysis_id", id, "duration", elapsed, "rating", v.Rating)
	e.observe(string(StatusCompleted), elapsed)
}

func (e *Executor) observe(status string, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.AnalysesFinished.WithLabelValues(status).Inc()
	e.metrics.AnalysisDuration.Observe(elapsed.Seconds())
}
