package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/config"
	"github.com/forgo/guildhall/internal/handler"
	"github.com/forgo/guildhall/internal/jobs"
	"github.com/forgo/guildhall/internal/middleware"
	"github.com/forgo/guildhall/internal/service"
	"github.com/forgo/guildhall/internal/store"
)

func main() {
	// Initialize structured logging; development config lowers the level to debug
	var logLevel slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: &logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logLevel.Set(slog.LevelDebug)
	}

	// Open the roster store
	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open store", slog.String("driver", cfg.Store.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	// Initialize services
	guildService := service.NewGuildService(service.GuildServiceConfig{
		GuildRepo: st.Guilds,
	})
	playerService := service.NewPlayerService(service.PlayerServiceConfig{
		PlayerRepo: st.Players,
		GuildRepo:  st.Guilds,
		Engine:     balance.New(balance.Config{MinCapacity: cfg.Balance.MinCapacity}),
		ApplyMode:  service.ApplyMode(cfg.Balance.ApplyMode),
		Logger:     logger,
	})

	// Initialize the rebalance job
	if cfg.Balance.RebalanceInterval > 0 {
		rebalancer := jobs.NewRebalancer(jobs.RebalancerConfig{
			Balancer: playerService,
			Interval: cfg.Balance.RebalanceInterval,
			Capacity: cfg.Balance.RebalanceCapacity,
			Logger:   logger,
		})
		rebalancer.Start()
		defer rebalancer.Stop()
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(st)
	guildHandler := handler.NewGuildHandler(guildService)
	playerHandler := handler.NewPlayerHandler(playerService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Guild endpoints
	mux.HandleFunc("GET /v1/guilds", guildHandler.List)
	mux.HandleFunc("POST /v1/guilds", guildHandler.Create)
	mux.HandleFunc("GET /v1/guilds/{guildId}", guildHandler.Get)
	mux.HandleFunc("PATCH /v1/guilds/{guildId}", guildHandler.Update)
	mux.HandleFunc("DELETE /v1/guilds/{guildId}", guildHandler.Delete)

	// Player endpoints
	mux.HandleFunc("GET /v1/players", playerHandler.List)
	mux.HandleFunc("POST /v1/players", playerHandler.Create)
	mux.HandleFunc("GET /v1/players/{playerId}", playerHandler.Get)
	mux.HandleFunc("PATCH /v1/players/{playerId}", playerHandler.Update)
	mux.HandleFunc("DELETE /v1/players/{playerId}", playerHandler.Delete)

	// Balancing endpoints
	mux.HandleFunc("POST /v1/players/balance", playerHandler.Balance)
	mux.HandleFunc("POST /v1/players/reset", playerHandler.Reset)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Store.Driver),
			slog.Int("min_capacity", playerService.MinCapacity()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
