// Package verdict aggregates the collision, capacity, pool, and load
// simulation models into a single scalability verdict. The aggregator is a
// pure function of its input config; nothing persists across calls.
package verdict

import (
	"context"
	"log/slog"

	"github.com/attendsim/capacity-core/internal/capacity"
	"github.com/attendsim/capacity-core/internal/collision"
	"github.com/attendsim/capacity-core/internal/loadsim"
	"github.com/attendsim/capacity-core/internal/pool"
	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/logger"
	"github.com/attendsim/capacity-core/pkg/models"
)

// Rating thresholds over the capacity ratio (binding capacity / required)
const (
	ratioExcellent = 1.2
	ratioGood      = 1.0
	ratioLimited   = 0.8
)

// Analyzer runs a full scalability analysis
type Analyzer struct {
	logger *slog.Logger
}

// New creates an analyzer
func New() *Analyzer {
	return &Analyzer{logger: logger.Default}
}

// SetLogger sets the analyzer's logger
func (a *Analyzer) SetLogger(l *slog.Logger) {
	a.logger = l
}

// Analyze validates cfg, runs every model against it, and returns the
// aggregate verdict. Invalid configuration fails fast before any model
// runs; no partial verdict is produced.
func (a *Analyzer) Analyze(ctx context.Context, cfg *config.AnalysisConfig) (*models.ScalabilityVerdict, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	threshold := cfg.Threshold()

	collisionEst, err := collision.Estimate(cfg.IdentifierSpaceBits, cfg.Population(), threshold)
	if err != nil {
		return nil, err
	}

	factors := capacity.Analyze(cfg)
	binding, _ := capacity.Combine(factors)

	poolEst := pool.Estimate(cfg.ConnectionPoolSize, cfg.TargetConcurrency, cfg.Pool)

	sim, err := loadsim.NewSeeded(cfg.Seed).Simulate(ctx, cfg.Operations(), cfg.ServiceLatency, cfg.FailureInjectionRate)
	if err != nil {
		return nil, err
	}
	simPassed := loadsim.Passes(sim, cfg.Policy)

	meets := binding.CurrentCapacity >= cfg.TargetConcurrency &&
		collisionEst.Probability <= threshold &&
		simPassed

	degraded := false
	for _, f := range factors {
		if f.Defaulted {
			degraded = true
			break
		}
	}

	v := &models.ScalabilityVerdict{
		MeetsRequirement:   meets,
		Rating:             rate(binding.CurrentCapacity, cfg.TargetConcurrency),
		BindingFactor:      binding,
		Factors:            factors,
		Collision:          collisionEst,
		Pool:               poolEst,
		Simulation:         sim,
		SimulationPassed:   simPassed,
		DegradedConfidence: degraded,
	}
	v.Remediations = buildRemediations(v, threshold)

	a.logger.Info("analysis complete",
		"meets_requirement", v.MeetsRequirement,
		"rating", v.Rating,
		"binding_factor", binding.ComponentName,
		"binding_capacity", binding.CurrentCapacity,
		"collision_probability", collisionEst.Probability,
		"degraded_confidence", degraded)

	return v, nil
}

// rate grades the headroom ratio between the binding capacity and the
// required concurrency
func rate(bindingCapacity, required int) models.Rating {
	if required <= 0 {
		return models.RatingPoor
	}
	ratio := float64(bindingCapacity) / float64(required)
	switch {
	case ratio >= ratioExcellent:
		return models.RatingExcellent
	case ratio >= ratioGood:
		return models.RatingGood
	case ratio >= ratioLimited:
		return models.RatingLimited
	default:
		return models.RatingPoor
	}
}
