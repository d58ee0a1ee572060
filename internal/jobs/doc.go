// Package jobs implements background job processing for the Guildhall API.
//
// The Rebalancer runs a balancing pass on a ticker so players created
// between manual runs are picked up without an operator. It goes through the
// same PlayerService as the HTTP API and the CLI, so its passes are
// serialized with theirs.
//
//	job := jobs.NewRebalancer(jobs.RebalancerConfig{
//	    Balancer: playerService,
//	    Interval: cfg.Balance.RebalanceInterval,
//	    Capacity: cfg.Balance.RebalanceCapacity,
//	})
//	job.Start()
//	defer job.Stop()
//
// A roster without guilds or without enough coverage is not treated as a
// failure; the pass is skipped and logged at info level.
package jobs
