package config

import "time"

// Default values substituted for optional fields. Resource defaults are
// deliberately conservative figures for a BLE attendance deployment; a
// partial configuration still yields a best-effort verdict, flagged as
// degraded confidence by the aggregator.
const (
	DefaultCollisionThreshold   = 0.01
	DefaultUsersPerConnection   = 5
	DefaultBandwidthKbps        = 100000.0
	DefaultPerUserKbps          = 50.0
	DefaultMemoryMB             = 8192.0
	DefaultPerUserMemoryMB      = 16.0
	DefaultMaxCPUUtilization    = 0.85
	DefaultPerUserCPUCost       = 0.004
	DefaultMaxChannelOps        = 180
	DefaultPerWaitingCostMs     = 50.0
	DefaultMaxAverageWaitMs     = 2000.0
	DefaultMaxErrorRate         = 0.05
	DefaultMaxAverageLatencyMs  = 1000.0
	DefaultSimulationBatchLimit = 30 * time.Second
)

// AnalysisConfig is the input for one scalability analysis. It is supplied
// once per run and never mutated by the engine.
type AnalysisConfig struct {
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	// TargetConcurrency is the concurrent-user load the deployment must meet
	TargetConcurrency int `yaml:"target_concurrency" json:"target_concurrency"`

	// IdentifierSpaceBits is the width of the session identifier field,
	// e.g. 16 for a 16-bit minor-field encoding
	IdentifierSpaceBits int `yaml:"identifier_space_bits" json:"identifier_space_bits"`

	// ConnectionPoolSize is the declared database connection pool size
	ConnectionPoolSize int `yaml:"connection_pool_size" json:"connection_pool_size"`

	// ExpectedPopulation is the number of concurrently active session
	// identifiers used for collision estimation. Zero selects
	// TargetConcurrency.
	ExpectedPopulation int `yaml:"expected_population,omitempty" json:"expected_population,omitempty"`

	// FailureInjectionRate is the per-trial failure probability in [0, 1]
	FailureInjectionRate float64 `yaml:"failure_injection_rate" json:"failure_injection_rate"`

	// ServiceLatency bounds the injected per-trial latency
	ServiceLatency LatencyRange `yaml:"service_latency_ms" json:"service_latency_ms"`

	// CollisionThreshold is the acceptable collision probability.
	// Zero selects DefaultCollisionThreshold.
	CollisionThreshold float64 `yaml:"collision_threshold,omitempty" json:"collision_threshold,omitempty"`

	// SimulatedOperations overrides the synthetic trial count.
	// Zero selects TargetConcurrency.
	SimulatedOperations int `yaml:"simulated_operations,omitempty" json:"simulated_operations,omitempty"`

	// Seed drives the simulator's random source. Zero selects a
	// time-based seed (non-reproducible).
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	Resources *Resources  `yaml:"resources,omitempty" json:"resources,omitempty"`
	Pool      *PoolTuning `yaml:"pool,omitempty" json:"pool,omitempty"`
	Policy    *PassPolicy `yaml:"policy,omitempty" json:"policy,omitempty"`
}

// LatencyRange bounds the uniformly drawn per-trial latency, in milliseconds
type LatencyRange struct {
	MinMs float64 `yaml:"min" json:"min"`
	MaxMs float64 `yaml:"max" json:"max"`
}

// Min returns the lower latency bound as a duration
func (l LatencyRange) Min() time.Duration {
	return time.Duration(l.MinMs * float64(time.Millisecond))
}

// Max returns the upper latency bound as a duration
func (l LatencyRange) Max() time.Duration {
	return time.Duration(l.MaxMs * float64(time.Millisecond))
}

// Resources holds the per-dimension capacity inputs. Every field is
// optional; a zero value selects the corresponding documented default.
type Resources struct {
	UsersPerConnection int     `yaml:"users_per_connection,omitempty" json:"users_per_connection,omitempty"`
	BandwidthKbps      float64 `yaml:"bandwidth_kbps,omitempty" json:"bandwidth_kbps,omitempty"`
	PerUserKbps        float64 `yaml:"per_user_kbps,omitempty" json:"per_user_kbps,omitempty"`
	MemoryMB           float64 `yaml:"memory_mb,omitempty" json:"memory_mb,omitempty"`
	PerUserMemoryMB    float64 `yaml:"per_user_memory_mb,omitempty" json:"per_user_memory_mb,omitempty"`
	MaxCPUUtilization  float64 `yaml:"max_cpu_utilization,omitempty" json:"max_cpu_utilization,omitempty"`
	PerUserCPUCost     float64 `yaml:"per_user_cpu_cost,omitempty" json:"per_user_cpu_cost,omitempty"`
	MaxChannelOps      int     `yaml:"max_channel_ops,omitempty" json:"max_channel_ops,omitempty"`
}

// PoolTuning parameterizes the connection pool queueing approximation
type PoolTuning struct {
	PerWaitingRequestCostMs float64 `yaml:"per_waiting_request_cost_ms,omitempty" json:"per_waiting_request_cost_ms,omitempty"`
	MaxAverageWaitMs        float64 `yaml:"max_average_wait_ms,omitempty" json:"max_average_wait_ms,omitempty"`
}

// PerWaitingCost returns the modeled delay added per waiting request
func (p *PoolTuning) PerWaitingCost() time.Duration {
	ms := DefaultPerWaitingCostMs
	if p != nil && p.PerWaitingRequestCostMs > 0 {
		ms = p.PerWaitingRequestCostMs
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// MaxAverageWait returns the wait bound above which the pool is flagged
func (p *PoolTuning) MaxAverageWait() time.Duration {
	ms := DefaultMaxAverageWaitMs
	if p != nil && p.MaxAverageWaitMs > 0 {
		ms = p.MaxAverageWaitMs
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// PassPolicy is the caller-supplied pass/fail criterion applied to the
// simulation metrics. The simulator itself only reports numbers.
type PassPolicy struct {
	MaxErrorRate        float64 `yaml:"max_error_rate,omitempty" json:"max_error_rate,omitempty"`
	MaxAverageLatencyMs float64 `yaml:"max_average_latency_ms,omitempty" json:"max_average_latency_ms,omitempty"`
}

// ErrorRateBound returns the policy's error rate ceiling
func (p *PassPolicy) ErrorRateBound() float64 {
	if p != nil && p.MaxErrorRate > 0 {
		return p.MaxErrorRate
	}
	return DefaultMaxErrorRate
}

// AverageLatencyBound returns the policy's average latency ceiling
func (p *PassPolicy) AverageLatencyBound() time.Duration {
	ms := DefaultMaxAverageLatencyMs
	if p != nil && p.MaxAverageLatencyMs > 0 {
		ms = p.MaxAverageLatencyMs
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Threshold returns the acceptable collision probability
func (c *AnalysisConfig) Threshold() float64 {
	if c.CollisionThreshold > 0 {
		return c.CollisionThreshold
	}
	return DefaultCollisionThreshold
}

// Population returns the identifier population for collision estimation
func (c *AnalysisConfig) Population() int {
	if c.ExpectedPopulation > 0 {
		return c.ExpectedPopulation
	}
	return c.TargetConcurrency
}

// Operations returns the synthetic trial count for the simulation
func (c *AnalysisConfig) Operations() int {
	if c.SimulatedOperations > 0 {
		return c.SimulatedOperations
	}
	return c.TargetConcurrency
}
