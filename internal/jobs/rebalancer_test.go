package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/service"
)

type balancerFunc func(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error)

func (f balancerFunc) Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
	return f(ctx, req)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRebalancer_RunOnce_UsesConfiguredCapacity(t *testing.T) {
	var got *model.BalanceRequest
	r := NewRebalancer(RebalancerConfig{
		Balancer: balancerFunc(func(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
			got = req
			return &model.BalanceResult{
				Assignments: []model.Assignment{{PlayerID: "player:p1", GuildID: "guild:g1"}},
				Applied:     true,
			}, nil
		}),
		Capacity: 6,
		Logger:   quietLogger(),
	})

	result, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 6, got.MaxGuildPlayers)
	assert.Empty(t, got.PlayerIDs)
	assert.False(t, got.DryRun)
	assert.Len(t, result.Assignments, 1)
}

func TestRebalancer_RunOnce_ReturnsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		idle bool
	}{
		{"no guilds", service.ErrInsufficientGuilds, true},
		{"coverage", service.ErrInsufficientClassCoverage, true},
		{"store", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRebalancer(RebalancerConfig{
				Balancer: balancerFunc(func(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
					return nil, tt.err
				}),
				Capacity: 3,
				Logger:   quietLogger(),
			})

			_, err := r.RunOnce(context.Background())
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.idle, idle(err))
		})
	}
}

func TestRebalancer_StartStop(t *testing.T) {
	var calls atomic.Int32
	var once sync.Once
	ran := make(chan struct{})

	r := NewRebalancer(RebalancerConfig{
		Balancer: balancerFunc(func(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
			calls.Add(1)
			once.Do(func() { close(ran) })
			return &model.BalanceResult{}, nil
		}),
		Interval: 5 * time.Millisecond,
		Capacity: 3,
		Logger:   quietLogger(),
	})

	assert.False(t, r.IsRunning())
	r.Start()
	r.Start() // second start is a no-op
	assert.True(t, r.IsRunning())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("rebalancer did not run a pass")
	}

	r.Stop()
	r.Stop() // second stop is a no-op
	assert.False(t, r.IsRunning())

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no passes after Stop")
}

func TestNewRebalancer_Defaults(t *testing.T) {
	r := NewRebalancer(RebalancerConfig{Capacity: 3})

	assert.Equal(t, 5*time.Minute, r.interval)
	assert.Equal(t, time.Minute, r.timeout)
	assert.NotNil(t, r.logger)
}
