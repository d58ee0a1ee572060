package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/service"
)

// Balancer runs one balancing pass
type Balancer interface {
	Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error)
}

// Rebalancer periodically assigns players that are still without a guild
type Rebalancer struct {
	balancer Balancer
	interval time.Duration
	capacity int
	timeout  time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// RebalancerConfig holds configuration for the rebalancer job
type RebalancerConfig struct {
	Balancer Balancer
	Interval time.Duration // Optional, defaults to 5 minutes
	Capacity int           // max guild players for each pass
	Timeout  time.Duration // Optional per-pass timeout, defaults to 1 minute
	Logger   *slog.Logger  // Optional, uses slog.Default() if nil
}

// NewRebalancer creates a new rebalancer job
func NewRebalancer(cfg RebalancerConfig) *Rebalancer {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Rebalancer{
		balancer: cfg.Balancer,
		interval: interval,
		capacity: cfg.Capacity,
		timeout:  timeout,
		logger:   logger.With(slog.String("job", "rebalancer")),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the rebalancer job
func (r *Rebalancer) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()
	r.logger.Info("rebalancer started", slog.Duration("interval", r.interval), slog.Int("capacity", r.capacity))
}

// Stop gracefully stops the rebalancer job and waits for an in-flight pass
func (r *Rebalancer) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
	r.logger.Info("rebalancer stopped")
}

// run is the main loop
func (r *Rebalancer) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.pass()
		case <-r.stopCh:
			return
		}
	}
}

func (r *Rebalancer) pass() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.RunOnce(ctx); err != nil && !idle(err) {
		r.logger.Error("rebalance failed", slog.String("error", err.Error()))
	}
}

// RunOnce runs a single balancing pass (for testing or manual trigger).
// A roster that cannot be balanced yet is logged and returned as an error.
func (r *Rebalancer) RunOnce(ctx context.Context) (*model.BalanceResult, error) {
	result, err := r.balancer.Balance(ctx, &model.BalanceRequest{MaxGuildPlayers: r.capacity})
	if err != nil {
		if idle(err) {
			r.logger.Info("rebalance skipped", slog.String("reason", err.Error()))
		}
		return nil, err
	}

	if len(result.Assignments) > 0 || len(result.Skipped) > 0 {
		r.logger.Info("rebalance pass complete",
			slog.Int("assigned", len(result.Assignments)),
			slog.Int("skipped", len(result.Skipped)),
		)
	}
	return result, nil
}

// IsRunning returns whether the rebalancer is running
func (r *Rebalancer) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// idle reports errors that mean the roster is not ready to balance rather
// than that something broke
func idle(err error) bool {
	return errors.Is(err, service.ErrInsufficientGuilds) ||
		errors.Is(err, service.ErrInsufficientClassCoverage)
}
