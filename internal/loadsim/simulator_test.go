package loadsim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
)

var testLatency = config.LatencyRange{MinMs: 10, MaxMs: 500}

func TestSimulateCountsEveryTrial(t *testing.T) {
	sim := NewSeeded(1)
	m, err := sim.Simulate(context.Background(), 200, testLatency, 0.2)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	if m.TotalOperations != 200 {
		t.Fatalf("expected 200 operations, got %d", m.TotalOperations)
	}
	if m.Successes+m.Failures != 200 {
		t.Fatalf("successes %d + failures %d should equal 200", m.Successes, m.Failures)
	}
	if m.ErrorRate < 0 || m.ErrorRate > 1 {
		t.Fatalf("error rate %f escaped [0, 1]", m.ErrorRate)
	}
}

func TestSimulateZeroFailureRate(t *testing.T) {
	sim := NewSeeded(7)
	m, err := sim.Simulate(context.Background(), 100, testLatency, 0)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	if m.Failures != 0 {
		t.Fatalf("expected no failures at rate 0, got %d", m.Failures)
	}
	if m.ErrorRate != 0 {
		t.Fatalf("expected error rate 0, got %f", m.ErrorRate)
	}
	if m.Successes != 100 {
		t.Fatalf("expected 100 successes, got %d", m.Successes)
	}
}

func TestSimulateCertainFailure(t *testing.T) {
	sim := NewSeeded(7)
	m, err := sim.Simulate(context.Background(), 50, testLatency, 1)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	if m.Failures != 50 {
		t.Fatalf("expected every trial to fail, got %d failures", m.Failures)
	}
	if m.ErrorRate != 1 {
		t.Fatalf("expected error rate 1, got %f", m.ErrorRate)
	}
	if m.ThroughputPerSecond != 0 {
		t.Fatalf("expected zero throughput with no successes, got %f", m.ThroughputPerSecond)
	}
}

func TestSimulateDeterministicForSeed(t *testing.T) {
	run := func() *models.SimulationMetrics {
		m, err := NewSeeded(42).Simulate(context.Background(), 100, testLatency, 0.1)
		if err != nil {
			t.Fatalf("Simulate error: %v", err)
		}
		return m
	}

	first := run()
	second := run()
	if *first != *second {
		t.Fatalf("same seed produced different metrics:\n%+v\n%+v", first, second)
	}
}

func TestSimulateSeedsDiverge(t *testing.T) {
	a, err := NewSeeded(1).Simulate(context.Background(), 100, testLatency, 0.5)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	b, err := NewSeeded(2).Simulate(context.Background(), 100, testLatency, 0.5)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if *a == *b {
		t.Fatalf("different seeds should not reproduce identical metrics")
	}
}

func TestSimulateLatencyBounds(t *testing.T) {
	m, err := NewSeeded(3).Simulate(context.Background(), 500, config.LatencyRange{MinMs: 20, MaxMs: 80}, 0)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	if m.AverageLatencyMs < 20 || m.AverageLatencyMs >= 80 {
		t.Fatalf("average latency %f escaped the injected range", m.AverageLatencyMs)
	}
	if m.LatencyP95Ms < m.AverageLatencyMs {
		t.Fatalf("p95 %f below the mean %f", m.LatencyP95Ms, m.AverageLatencyMs)
	}
	if m.LatencyP99Ms < m.LatencyP95Ms {
		t.Fatalf("p99 %f below p95 %f", m.LatencyP99Ms, m.LatencyP95Ms)
	}
}

func TestSimulateThroughputFromModeledDuration(t *testing.T) {
	// A degenerate range pins every latency to exactly 100ms; 50 successes
	// over a modeled 0.1s batch is 500 ops/s.
	m, err := NewSeeded(5).Simulate(context.Background(), 50, config.LatencyRange{MinMs: 100, MaxMs: 100}, 0)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if m.ThroughputPerSecond != 500 {
		t.Fatalf("expected throughput 500, got %f", m.ThroughputPerSecond)
	}
}

func TestSimulateInvalidArguments(t *testing.T) {
	sim := NewSeeded(1)
	ctx := context.Background()

	if _, err := sim.Simulate(ctx, 0, testLatency, 0); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("zero operations: expected ErrInvalid, got %v", err)
	}
	if _, err := sim.Simulate(ctx, 10, testLatency, 1.5); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("failure rate above 1: expected ErrInvalid, got %v", err)
	}
	if _, err := sim.Simulate(ctx, 10, config.LatencyRange{MinMs: 50, MaxMs: 10}, 0); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("inverted latency range: expected ErrInvalid, got %v", err)
	}
}

func TestSimulateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeeded(1).Simulate(ctx, 100, testLatency, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPasses(t *testing.T) {
	policy := &config.PassPolicy{MaxErrorRate: 0.05, MaxAverageLatencyMs: 1000}

	tests := []struct {
		name     string
		metrics  *models.SimulationMetrics
		expected bool
	}{
		{"nil metrics", nil, false},
		{"within bounds", &models.SimulationMetrics{ErrorRate: 0.01, AverageLatencyMs: 200}, true},
		{"at bounds", &models.SimulationMetrics{ErrorRate: 0.05, AverageLatencyMs: 1000}, true},
		{"error rate too high", &models.SimulationMetrics{ErrorRate: 0.06, AverageLatencyMs: 200}, false},
		{"latency too high", &models.SimulationMetrics{ErrorRate: 0.01, AverageLatencyMs: 1500}, false},
	}

	for _, tt := range tests {
		if got := Passes(tt.metrics, policy); got != tt.expected {
			t.Errorf("%s: Passes = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestPassesDefaultPolicy(t *testing.T) {
	m := &models.SimulationMetrics{ErrorRate: 0.04, AverageLatencyMs: 900}
	if !Passes(m, nil) {
		t.Fatalf("expected the default policy bounds (5%%, 1000ms) to pass")
	}
	m.ErrorRate = 0.2
	if Passes(m, nil) {
		t.Fatalf("expected a 20%% error rate to fail the default policy")
	}
}

func TestSimulateBatchCompletesWithinTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, err := NewSeeded(9).Simulate(ctx, 1000, testLatency, 0.3)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if m.TotalOperations != 1000 {
		t.Fatalf("expected 1000 operations, got %d", m.TotalOperations)
	}
}
