// Package pool approximates queueing behavior for a fixed-size connection
// pool under simultaneous demand.
//
// The wait model is a simple linear backlog (waiting requests times a fixed
// per-request cost), documented as an approximation rather than an exact
// M/M/c solution.
package pool

import (
	"time"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
	"github.com/attendsim/capacity-core/pkg/utils"
)

// utilizationBound is the utilization above which the pool is flagged even
// when the average wait stays within its configured limit
const utilizationBound = 0.8

// Estimate computes the closed-form pool approximation for demand
// simultaneous requests against a pool of poolSize connections
func Estimate(poolSize, demand int, tuning *config.PoolTuning) models.PoolEstimate {
	active := utils.Min(demand, poolSize)
	waiting := utils.Max(0, demand-poolSize)

	utilization := 0.0
	if poolSize > 0 {
		utilization = utils.ClampFloat64(float64(demand)/float64(poolSize), 0, 1)
	}

	avgWait := time.Duration(waiting) * tuning.PerWaitingCost()
	healthy := utilization < utilizationBound && avgWait <= tuning.MaxAverageWait()

	return models.PoolEstimate{
		PoolSize:          poolSize,
		Demand:            demand,
		ActiveConnections: active,
		WaitingRequests:   waiting,
		Utilization:       utilization,
		AverageWait:       avgWait,
		Healthy:           healthy,
	}
}
