// Package capacity models each resource dimension of an attendance
// deployment as a capacity function of concurrency and finds the binding
// constraint. Dimensions are purely mathematical; no real resource is ever
// touched.
package capacity

import (
	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
)

// Dimension component names
const (
	ComponentConnectionPool = "database_connection_pool"
	ComponentNetwork        = "network_bandwidth"
	ComponentMemory         = "memory"
	ComponentCPU            = "cpu"
	ComponentBLEChannel     = "ble_channel"
)

// ConnectionPoolCapacity returns the maximum concurrent users the database
// connection pool supports: pool size times users served per connection
func ConnectionPoolCapacity(cfg *config.AnalysisConfig) models.CapacityFactor {
	usersPerConn := config.DefaultUsersPerConnection
	defaulted := true
	if cfg.Resources != nil && cfg.Resources.UsersPerConnection > 0 {
		usersPerConn = cfg.Resources.UsersPerConnection
		defaulted = false
	}

	return newFactor(ComponentConnectionPool, cfg.ConnectionPoolSize*usersPerConn, cfg.TargetConcurrency, defaulted)
}

// NetworkCapacity returns the maximum concurrent users the uplink supports:
// available bandwidth divided by per-user bandwidth
func NetworkCapacity(cfg *config.AnalysisConfig) models.CapacityFactor {
	bandwidth := config.DefaultBandwidthKbps
	perUser := config.DefaultPerUserKbps
	defaulted := true
	if cfg.Resources != nil && cfg.Resources.BandwidthKbps > 0 && cfg.Resources.PerUserKbps > 0 {
		bandwidth = cfg.Resources.BandwidthKbps
		perUser = cfg.Resources.PerUserKbps
		defaulted = false
	}

	return newFactor(ComponentNetwork, int(bandwidth/perUser), cfg.TargetConcurrency, defaulted)
}

// MemoryCapacity returns the maximum concurrent users the available memory
// supports: available memory divided by per-user footprint
func MemoryCapacity(cfg *config.AnalysisConfig) models.CapacityFactor {
	memory := config.DefaultMemoryMB
	perUser := config.DefaultPerUserMemoryMB
	defaulted := true
	if cfg.Resources != nil && cfg.Resources.MemoryMB > 0 && cfg.Resources.PerUserMemoryMB > 0 {
		memory = cfg.Resources.MemoryMB
		perUser = cfg.Resources.PerUserMemoryMB
		defaulted = false
	}

	return newFactor(ComponentMemory, int(memory/perUser), cfg.TargetConcurrency, defaulted)
}

// CPUCapacity returns the maximum concurrent users the CPU budget supports:
// the utilization ceiling divided by per-user utilization cost
func CPUCapacity(cfg *config.AnalysisConfig) models.CapacityFactor {
	maxUtil := config.DefaultMaxCPUUtilization
	perUser := config.DefaultPerUserCPUCost
	defaulted := true
	if cfg.Resources != nil && cfg.Resources.MaxCPUUtilization > 0 && cfg.Resources.PerUserCPUCost > 0 {
		maxUtil = cfg.Resources.MaxCPUUtilization
		perUser = cfg.Resources.PerUserCPUCost
		defaulted = false
	}

	return newFactor(ComponentCPU, int(maxUtil/perUser), cfg.TargetConcurrency, defaulted)
}

// BLEChannelCapacity returns the maximum concurrent advertising and scan
// operations the wireless hardware channel sustains
func BLEChannelCapacity(cfg *config.AnalysisConfig) models.CapacityFactor {
	maxOps := config.DefaultMaxChannelOps
	defaulted := true
	if cfg.Resources != nil && cfg.Resources.MaxChannelOps > 0 {
		maxOps = cfg.Resources.MaxChannelOps
		defaulted = false
	}

	return newFactor(ComponentBLEChannel, maxOps, cfg.TargetConcurrency, defaulted)
}

// Analyze evaluates every resource dimension against the target concurrency
func Analyze(cfg *config.AnalysisConfig) []models.CapacityFactor {
	return []models.CapacityFactor{
		ConnectionPoolCapacity(cfg),
		NetworkCapacity(cfg),
		MemoryCapacity(cfg),
		CPUCapacity(cfg),
		BLEChannelCapacity(cfg),
	}
}

func newFactor(name string, current, required int, defaulted bool) models.CapacityFactor {
	return models.CapacityFactor{
		ComponentName:    name,
		CurrentCapacity:  current,
		RequiredCapacity: required,
		Severity:         AssignSeverity(current, required),
		Defaulted:        defaulted,
	}
}
