package models

import "time"

// Severity ranks how far a capacity factor falls short of its requirement
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityOrder maps severities to sort priority (lower sorts first)
var severityOrder = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Rank returns the sort priority of the severity. Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityOrder[s]; ok {
		return r
	}
	return len(severityOrder)
}

// Rating grades overall scalability headroom
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingLimited   Rating = "limited"
	RatingPoor      Rating = "poor"
)

// RiskLevel classifies an identifier-collision probability
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// SimulationMetrics summarizes one synthetic load batch
type SimulationMetrics struct {
	TotalOperations     int     `json:"total_operations"`
	Successes           int     `json:"successes"`
	Failures            int     `json:"failures"`
	AverageLatencyMs    float64 `json:"average_latency_ms"`
	LatencyP95Ms        float64 `json:"latency_p95_ms"`
	LatencyP99Ms        float64 `json:"latency_p99_ms"`
	ThroughputPerSecond float64 `json:"throughput_per_second"`
	ErrorRate           float64 `json:"error_rate"`
}

// CapacityFactor describes one resource dimension's capacity against the
// concurrency it is asked to serve
type CapacityFactor struct {
	ComponentName    string   `json:"component_name"`
	CurrentCapacity  int      `json:"current_capacity"`
	RequiredCapacity int      `json:"required_capacity"`
	Severity         Severity `json:"severity"`
	Defaulted        bool     `json:"defaulted,omitempty"` // capacity derived from a documented default
}

// CollisionEstimate quantifies identifier-collision risk for a fixed-width
// identifier space
type CollisionEstimate struct {
	IdentifierSpaceSize uint64    `json:"identifier_space_size"`
	PopulationSize      int       `json:"population_size"`
	Probability         float64   `json:"collision_probability"`
	ExactProbability    float64   `json:"exact_collision_probability"`
	MaxSafePopulation   int       `json:"max_safe_population"`
	Risk                RiskLevel `json:"risk"`
}

// PoolEstimate is the closed-form queueing approximation for a fixed-size
// connection pool under simultaneous demand
type PoolEstimate struct {
	PoolSize          int           `json:"pool_size"`
	Demand            int           `json:"demand"`
	ActiveConnections int           `json:"active_connections"`
	WaitingRequests   int           `json:"waiting_requests"`
	Utilization       float64       `json:"utilization"`
	AverageWait       time.Duration `json:"average_wait_ns"`
	Healthy           bool          `json:"healthy"`
}

// ScalabilityVerdict is the aggregate result of one analysis call
type ScalabilityVerdict struct {
	MeetsRequirement   bool               `json:"meets_requirement"`
	Rating             Rating             `json:"rating"`
	BindingFactor      CapacityFactor     `json:"binding_factor"`
	Factors            []CapacityFactor   `json:"factors"`
	Collision          CollisionEstimate  `json:"collision"`
	Pool               PoolEstimate       `json:"pool"`
	Simulation         *SimulationMetrics `json:"simulation,omitempty"`
	SimulationPassed   bool               `json:"simulation_passed"`
	Remediations       []string           `json:"remediations,omitempty"`
	DegradedConfidence bool               `json:"degraded_confidence"`
}
