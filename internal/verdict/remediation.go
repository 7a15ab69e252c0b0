package verdict

import (
	"fmt"
	"sort"

	"github.com/attendsim/capacity-core/pkg/models"
)

// remediation pairs an advisory with the severity that orders it
type remediation struct {
	severity models.Severity
	text     string
}

// buildRemediations produces one human-readable entry per failing aspect of
// the verdict, ordered by severity (critical, high, medium, low) with
// duplicates removed. Ordering is stable within a severity class.
func buildRemediations(v *models.ScalabilityVerdict, threshold float64) []string {
	var items []remediation

	for _, f := range v.Factors {
		if f.Severity == models.SeverityLow {
			continue
		}
		items = append(items, remediation{
			severity: f.Severity,
			text: fmt.Sprintf("increase %s capacity: %d concurrent users supported, %d required",
				f.ComponentName, f.CurrentCapacity, f.RequiredCapacity),
		})
	}

	switch v.Collision.Risk {
	case models.RiskHigh:
		items = append(items, remediation{
			severity: models.SeverityHigh,
			text:     collisionAdvisory(v.Collision, threshold),
		})
	case models.RiskMedium:
		items = append(items, remediation{
			severity: models.SeverityMedium,
			text:     collisionAdvisory(v.Collision, threshold),
		})
	}

	if !v.Pool.Healthy {
		severity := models.SeverityMedium
		if v.Pool.Utilization >= 1 {
			severity = models.SeverityHigh
		}
		items = append(items, remediation{
			severity: severity,
			text: fmt.Sprintf("grow the connection pool: %d of %d requests queue behind the pool (utilization %.0f%%, average wait %s)",
				v.Pool.WaitingRequests, v.Pool.Demand, v.Pool.Utilization*100, v.Pool.AverageWait),
		})
	}

	if v.Simulation != nil && !v.SimulationPassed {
		items = append(items, remediation{
			severity: models.SeverityMedium,
			text: fmt.Sprintf("simulated load misses the pass policy: error rate %.1f%%, average latency %.0fms",
				v.Simulation.ErrorRate*100, v.Simulation.AverageLatencyMs),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].severity.Rank() < items[j].severity.Rank()
	})

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item.text] {
			continue
		}
		seen[item.text] = true
		out = append(out, item.text)
	}
	return out
}

func collisionAdvisory(c models.CollisionEstimate, threshold float64) string {
	return fmt.Sprintf("widen the session identifier field or cap concurrent sessions: collision probability %.1f%% exceeds the %.1f%% threshold (at most %d identifiers are safe in a space of %d)",
		c.Probability*100, threshold*100, c.MaxSafePopulation, c.IdentifierSpaceSize)
}
