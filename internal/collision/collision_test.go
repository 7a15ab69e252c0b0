package collision

import (
	"errors"
	"math"
	"testing"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
)

func TestSpaceSize(t *testing.T) {
	size, err := SpaceSize(16)
	if err != nil {
		t.Fatalf("SpaceSize(16) error: %v", err)
	}
	if size != 65536 {
		t.Fatalf("SpaceSize(16) = %d, expected 65536", size)
	}

	for _, bits := range []int{0, -1, 63, 100} {
		if _, err := SpaceSize(bits); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("SpaceSize(%d) expected ErrInvalid, got %v", bits, err)
		}
	}
}

func TestEstimateProbability16BitField(t *testing.T) {
	// A 16-bit minor field with 275 concurrent sessions is the reference
	// case: 275^2 / (2*65536) = 75625/131072, already past 50%.
	p, err := EstimateProbability(65536, 275)
	if err != nil {
		t.Fatalf("EstimateProbability error: %v", err)
	}
	expected := 75625.0 / 131072.0
	if p != expected {
		t.Fatalf("EstimateProbability(65536, 275) = %f, expected %f", p, expected)
	}
	if ClassifyRisk(p) != models.RiskHigh {
		t.Fatalf("expected high risk at probability %f", p)
	}
}

func TestEstimateProbabilityClampsToOne(t *testing.T) {
	p, err := EstimateProbability(256, 1000)
	if err != nil {
		t.Fatalf("EstimateProbability error: %v", err)
	}
	if p != 1 {
		t.Fatalf("expected clamp to 1, got %f", p)
	}
}

func TestEstimateProbabilityTrivialPopulations(t *testing.T) {
	for _, population := range []int{0, 1, -3} {
		p, err := EstimateProbability(65536, population)
		if err != nil {
			t.Fatalf("EstimateProbability error: %v", err)
		}
		if p != 0 {
			t.Errorf("population %d: expected probability 0, got %f", population, p)
		}
	}
}

func TestEstimateProbabilityRejectsNonPowerOfTwo(t *testing.T) {
	for _, size := range []uint64{0, 3, 1000, 65535} {
		if _, err := EstimateProbability(size, 10); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("space %d: expected ErrInvalid, got %v", size, err)
		}
	}
}

func TestEstimateProbabilityExactStaysBelowLinear(t *testing.T) {
	linear, err := EstimateProbability(65536, 275)
	if err != nil {
		t.Fatalf("EstimateProbability error: %v", err)
	}
	exact, err := EstimateProbabilityExact(65536, 275)
	if err != nil {
		t.Fatalf("EstimateProbabilityExact error: %v", err)
	}

	want := 1 - math.Exp(-75625.0/131072.0)
	if math.Abs(exact-want) > 1e-12 {
		t.Fatalf("exact probability = %f, expected %f", exact, want)
	}
	// The linear approximation overshoots once probabilities leave the
	// small-ratio regime.
	if exact >= linear {
		t.Fatalf("exact %f should be below linear %f at this population", exact, linear)
	}
}

func TestMaxSafePopulation(t *testing.T) {
	tests := []struct {
		spaceSize uint64
		threshold float64
		expected  int
	}{
		{65536, 0.01, 36},
		{65536, 0.05, 80},
		{65536, 0, 0},
	}

	for _, tt := range tests {
		result := MaxSafePopulation(tt.spaceSize, tt.threshold)
		if result != tt.expected {
			t.Errorf("MaxSafePopulation(%d, %f) = %d, expected %d", tt.spaceSize, tt.threshold, result, tt.expected)
		}
	}
}

func TestMaxSafePopulationStaysUnderThreshold(t *testing.T) {
	safe := MaxSafePopulation(65536, 0.01)
	p, err := EstimateProbability(65536, safe)
	if err != nil {
		t.Fatalf("EstimateProbability error: %v", err)
	}
	if p > 0.01 {
		t.Fatalf("probability %f at the safe population %d exceeds the threshold", p, safe)
	}
	above, err := EstimateProbability(65536, safe+1)
	if err != nil {
		t.Fatalf("EstimateProbability error: %v", err)
	}
	if above <= 0.01 {
		t.Fatalf("probability %f one past the safe population should exceed the threshold", above)
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		probability float64
		expected    models.RiskLevel
	}{
		{0, models.RiskLow},
		{0.01, models.RiskLow},
		{0.011, models.RiskMedium},
		{0.05, models.RiskMedium},
		{0.051, models.RiskHigh},
		{1, models.RiskHigh},
	}

	for _, tt := range tests {
		result := ClassifyRisk(tt.probability)
		if result != tt.expected {
			t.Errorf("ClassifyRisk(%f) = %s, expected %s", tt.probability, result, tt.expected)
		}
	}
}

func TestEstimate(t *testing.T) {
	est, err := Estimate(16, 275, 0.01)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	if est.IdentifierSpaceSize != 65536 {
		t.Fatalf("expected space size 65536, got %d", est.IdentifierSpaceSize)
	}
	if est.PopulationSize != 275 {
		t.Fatalf("expected population 275, got %d", est.PopulationSize)
	}
	if est.MaxSafePopulation != 36 {
		t.Fatalf("expected max safe population 36, got %d", est.MaxSafePopulation)
	}
	if est.Risk != models.RiskHigh {
		t.Fatalf("expected high risk, got %s", est.Risk)
	}
	if est.ExactProbability >= est.Probability {
		t.Fatalf("exact %f should stay below the linear approximation %f here", est.ExactProbability, est.Probability)
	}
}

func TestEstimateInvalidBits(t *testing.T) {
	if _, err := Estimate(0, 100, 0.01); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero bits, got %v", err)
	}
}
