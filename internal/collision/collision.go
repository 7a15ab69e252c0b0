// Package collision estimates identifier-collision risk for a fixed-width
// session identifier space using the birthday-paradox approximation.
package collision

import (
	"fmt"
	"math"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
	"github.com/attendsim/capacity-core/pkg/utils"
)

// Risk classification thresholds over the collision probability
const (
	highRiskThreshold   = 0.05
	mediumRiskThreshold = 0.01
)

// SpaceSize returns the identifier space size 2^bits
func SpaceSize(bits int) (uint64, error) {
	if bits <= 0 || bits > 62 {
		return 0, fmt.Errorf("%w: identifier_space_bits must be in [1, 62], got %d", config.ErrInvalid, bits)
	}
	return uint64(1) << uint(bits), nil
}

// EstimateProbability returns the birthday-paradox collision probability for
// population identifiers drawn uniformly from a space of spaceSize values.
//
// This is the linear low-probability approximation n^2/2N of the exact form
// 1-e^(-n^2/2N). It diverges from the exact value once probabilities leave
// the small-ratio regime, but it is kept as the authoritative figure to
// match the deployed estimator; EstimateProbabilityExact reports the exact
// form alongside it. The result is clamped to [0, 1].
func EstimateProbability(spaceSize uint64, population int) (float64, error) {
	if !utils.IsPowerOfTwo(spaceSize) {
		return 0, fmt.Errorf("%w: identifier space size must be a positive power of two, got %d", config.ErrInvalid, spaceSize)
	}
	if population <= 1 {
		return 0, nil
	}

	n := float64(population)
	p := n * n / (2 * float64(spaceSize))
	return utils.ClampProbability(p), nil
}

// EstimateProbabilityExact returns the exact birthday-paradox collision
// probability 1-e^(-n^2/2N)
func EstimateProbabilityExact(spaceSize uint64, population int) (float64, error) {
	if !utils.IsPowerOfTwo(spaceSize) {
		return 0, fmt.Errorf("%w: identifier space size must be a positive power of two, got %d", config.ErrInvalid, spaceSize)
	}
	if population <= 1 {
		return 0, nil
	}

	n := float64(population)
	p := 1 - math.Exp(-n*n/(2*float64(spaceSize)))
	return utils.ClampProbability(p), nil
}

// MaxSafePopulation returns the largest population for which the linear
// approximation stays at or below threshold: floor(sqrt(2*N*threshold))
func MaxSafePopulation(spaceSize uint64, threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(2 * float64(spaceSize) * threshold)))
}

// ClassifyRisk maps a collision probability to a risk level:
// above 5% is high, above 1% is medium, otherwise low
func ClassifyRisk(probability float64) models.RiskLevel {
	switch {
	case probability > highRiskThreshold:
		return models.RiskHigh
	case probability > mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Estimate computes the full collision estimate for an identifier field of
// the given bit width and expected concurrently active population
func Estimate(bits int, population int, threshold float64) (models.CollisionEstimate, error) {
	spaceSize, err := SpaceSize(bits)
	if err != nil {
		return models.CollisionEstimate{}, err
	}

	probability, err := EstimateProbability(spaceSize, population)
	if err != nil {
		return models.CollisionEstimate{}, err
	}
	exact, err := EstimateProbabilityExact(spaceSize, population)
	if err != nil {
		return models.CollisionEstimate{}, err
	}

	return models.CollisionEstimate{
		IdentifierSpaceSize: spaceSize,
		PopulationSize:      population,
		Probability:         probability,
		ExactProbability:    exact,
		MaxSafePopulation:   MaxSafePopulation(spaceSize, threshold),
		Risk:                ClassifyRisk(probability),
	}, nil
}
