package capacity

import "github.com/attendsim/capacity-core/pkg/models"

// Combine returns the binding constraint: the factor with the smallest
// current capacity. System throughput is bounded by its weakest link, so
// the dimensions min-combine rather than average. Returns false for an
// empty factor list.
func Combine(factors []models.CapacityFactor) (models.CapacityFactor, bool) {
	if len(factors) == 0 {
		return models.CapacityFactor{}, false
	}

	binding := factors[0]
	for _, f := range factors[1:] {
		if f.CurrentCapacity < binding.CurrentCapacity {
			binding = f
		}
	}
	return binding, true
}

// AssignSeverity grades a dimension's shortfall: critical below half the
// required capacity, high below the required capacity, low otherwise
func AssignSeverity(current, required int) models.Severity {
	switch {
	case float64(current) < float64(required)*0.5:
		return models.SeverityCritical
	case current < required:
		return models.SeverityHigh
	default:
		return models.SeverityLow
	}
}
