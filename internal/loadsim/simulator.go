// Package loadsim produces a synthetic metrics profile for a batch of
// concurrent operations without touching real infrastructure. Latency and
// failure outcomes are injected from a seedable random source, so a fixed
// seed reproduces identical metrics.
package loadsim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/attendsim/capacity-core/internal/stats"
	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
	"github.com/attendsim/capacity-core/pkg/utils"
)

// Simulator runs synthetic concurrent load batches. It is stateless apart
// from its random source; create one per analysis for reproducible runs.
type Simulator struct {
	rand *utils.RandSource
}

// New creates a simulator around the given random source
func New(rand *utils.RandSource) *Simulator {
	return &Simulator{rand: rand}
}

// NewSeeded creates a simulator with a fresh random source for the seed.
// A seed of 0 selects a time-based seed.
func NewSeeded(seed int64) *Simulator {
	return New(utils.NewRandSource(seed))
}

// trial holds the injected parameters for one synthetic operation.
// Draws happen sequentially before any goroutine starts, which keeps the
// batch deterministic under an arbitrary goroutine schedule.
type trial struct {
	latency time.Duration
	failed  bool
}

// outcome is one trial's result. Each trial owns exactly one slot of the
// pre-sized outcome slice, so no synchronization is needed beyond the
// batch-completion barrier.
type outcome struct {
	latencyMs float64
	success   bool
}

// Simulate runs n independent trials concurrently and aggregates their
// outcomes once the whole batch has resolved. Each trial draws a latency
// uniformly from latency and fails with probability failureRate. Modeled
// per-trial failures are data, never errors; only invalid arguments or an
// expired context return an error.
func (s *Simulator) Simulate(ctx context.Context, n int, latency config.LatencyRange, failureRate float64) (*models.SimulationMetrics, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: operation count must be positive, got %d", config.ErrInvalid, n)
	}
	if failureRate < 0 || failureRate > 1 {
		return nil, fmt.Errorf("%w: failure rate must be in [0, 1], got %f", config.ErrInvalid, failureRate)
	}
	if latency.MinMs < 0 || latency.MaxMs < latency.MinMs {
		return nil, fmt.Errorf("%w: latency range [%f, %f] is not valid", config.ErrInvalid, latency.MinMs, latency.MaxMs)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trials := make([]trial, n)
	for i := range trials {
		trials[i] = trial{
			latency: s.rand.UniformDuration(latency.Min(), latency.Max()),
			failed:  s.rand.BernoulliBool(failureRate),
		}
	}

	outcomes := make([]outcome, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range trials {
		go func(i int) {
			defer wg.Done()
			outcomes[i] = runTrial(trials[i])
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Trials are pure computation and finish on their own; the batch
		// result is discarded rather than returned partially aggregated.
		return nil, ctx.Err()
	}

	return aggregate(outcomes), nil
}

// runTrial resolves a single synthetic operation from its injected draw
func runTrial(t trial) outcome {
	return outcome{
		latencyMs: float64(t.latency) / float64(time.Millisecond),
		success:   !t.failed,
	}
}

// aggregate folds completed outcomes into a metrics summary. It runs
// strictly after every trial has resolved.
func aggregate(outcomes []outcome) *models.SimulationMetrics {
	n := len(outcomes)
	latencies := make([]float64, n)
	successes := 0
	for i, o := range outcomes {
		latencies[i] = o.latencyMs
		if o.success {
			successes++
		}
	}
	failures := n - successes

	summary := stats.Summarize(latencies)

	// All trials run concurrently, so the modeled wall-clock of the batch
	// is its slowest trial. Deriving throughput from it keeps the metric a
	// pure function of the seed.
	throughput := 0.0
	if summary.Max > 0 {
		throughput = float64(successes) / (summary.Max / 1000.0)
	}

	return &models.SimulationMetrics{
		TotalOperations:     n,
		Successes:           successes,
		Failures:            failures,
		AverageLatencyMs:    summary.Mean,
		LatencyP95Ms:        summary.P95,
		LatencyP99Ms:        summary.P99,
		ThroughputPerSecond: throughput,
		ErrorRate:           utils.ClampProbability(float64(failures) / float64(n)),
	}
}

// Passes applies a caller-supplied pass policy to a metrics summary. The
// simulator itself is policy-free and only reports numbers.
func Passes(m *models.SimulationMetrics, policy *config.PassPolicy) bool {
	if m == nil {
		return false
	}
	avg := time.Duration(m.AverageLatencyMs * float64(time.Millisecond))
	return m.ErrorRate <= policy.ErrorRateBound() && avg <= policy.AverageLatencyBound()
}
