package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrInvalid marks configuration validation failures. Callers can branch on
// it with errors.Is without matching message text.
var ErrInvalid = errors.New("invalid analysis config")

// Load loads and parses an analysis configuration file
func Load(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before any computation runs. Invalid
// input fails fast; no partial analysis is performed on a rejected config.
func (c *AnalysisConfig) Validate() error {
	if c.TargetConcurrency <= 0 {
		return fmt.Errorf("%w: target_concurrency must be positive, got %d", ErrInvalid, c.TargetConcurrency)
	}
	if c.IdentifierSpaceBits <= 0 || c.IdentifierSpaceBits > 62 {
		return fmt.Errorf("%w: identifier_space_bits must be in [1, 62], got %d", ErrInvalid, c.IdentifierSpaceBits)
	}
	if c.ConnectionPoolSize <= 0 {
		return fmt.Errorf("%w: connection_pool_size must be positive, got %d", ErrInvalid, c.ConnectionPoolSize)
	}
	if c.ExpectedPopulation < 0 {
		return fmt.Errorf("%w: expected_population cannot be negative, got %d", ErrInvalid, c.ExpectedPopulation)
	}
	if c.FailureInjectionRate < 0 || c.FailureInjectionRate > 1 {
		return fmt.Errorf("%w: failure_injection_rate must be in [0, 1], got %f", ErrInvalid, c.FailureInjectionRate)
	}
	if c.ServiceLatency.MinMs < 0 {
		return fmt.Errorf("%w: service_latency_ms.min cannot be negative, got %f", ErrInvalid, c.ServiceLatency.MinMs)
	}
	if c.ServiceLatency.MaxMs < c.ServiceLatency.MinMs {
		return fmt.Errorf("%w: service_latency_ms.max %f is below min %f", ErrInvalid, c.ServiceLatency.MaxMs, c.ServiceLatency.MinMs)
	}
	if c.CollisionThreshold < 0 || c.CollisionThreshold > 1 {
		return fmt.Errorf("%w: collision_threshold must be in [0, 1], got %f", ErrInvalid, c.CollisionThreshold)
	}
	if c.SimulatedOperations < 0 {
		return fmt.Errorf("%w: simulated_operations cannot be negative, got %d", ErrInvalid, c.SimulatedOperations)
	}
	if c.Resources != nil {
		if err := validateResources(c.Resources); err != nil {
			return err
		}
	}
	if c.Pool != nil {
		if err := validatePoolTuning(c.Pool); err != nil {
			return err
		}
	}
	if c.Policy != nil {
		if err := validatePolicy(c.Policy); err != nil {
			return err
		}
	}
	return nil
}

// validateResources rejects negative resource figures. Zero values are
// legal and mean "not supplied"; defaults substitute for them later.
func validateResources(r *Resources) error {
	if r.UsersPerConnection < 0 {
		return fmt.Errorf("%w: resources.users_per_connection cannot be negative, got %d", ErrInvalid, r.UsersPerConnection)
	}
	if r.BandwidthKbps < 0 {
		return fmt.Errorf("%w: resources.bandwidth_kbps cannot be negative, got %f", ErrInvalid, r.BandwidthKbps)
	}
	if r.PerUserKbps < 0 {
		return fmt.Errorf("%w: resources.per_user_kbps cannot be negative, got %f", ErrInvalid, r.PerUserKbps)
	}
	if r.MemoryMB < 0 {
		return fmt.Errorf("%w: resources.memory_mb cannot be negative, got %f", ErrInvalid, r.MemoryMB)
	}
	if r.PerUserMemoryMB < 0 {
		return fmt.Errorf("%w: resources.per_user_memory_mb cannot be negative, got %f", ErrInvalid, r.PerUserMemoryMB)
	}
	if r.MaxCPUUtilization < 0 || r.MaxCPUUtilization > 1 {
		return fmt.Errorf("%w: resources.max_cpu_utilization must be in [0, 1], got %f", ErrInvalid, r.MaxCPUUtilization)
	}
	if r.PerUserCPUCost < 0 {
		return fmt.Errorf("%w: resources.per_user_cpu_cost cannot be negative, got %f", ErrInvalid, r.PerUserCPUCost)
	}
	if r.MaxChannelOps < 0 {
		return fmt.Errorf("%w: resources.max_channel_ops cannot be negative, got %d", ErrInvalid, r.MaxChannelOps)
	}
	return nil
}

func validatePoolTuning(p *PoolTuning) error {
	if p.PerWaitingRequestCostMs < 0 {
		return fmt.Errorf("%w: pool.per_waiting_request_cost_ms cannot be negative, got %f", ErrInvalid, p.PerWaitingRequestCostMs)
	}
	if p.MaxAverageWaitMs < 0 {
		return fmt.Errorf("%w: pool.max_average_wait_ms cannot be negative, got %f", ErrInvalid, p.MaxAverageWaitMs)
	}
	return nil
}

func validatePolicy(p *PassPolicy) error {
	if p.MaxErrorRate < 0 || p.MaxErrorRate > 1 {
		return fmt.Errorf("%w: policy.max_error_rate must be in [0, 1], got %f", ErrInvalid, p.MaxErrorRate)
	}
	if p.MaxAverageLatencyMs < 0 {
		return fmt.Errorf("%w: policy.max_average_latency_ms cannot be negative, got %f", ErrInvalid, p.MaxAverageLatencyMs)
	}
	return nil
}
