// Package store opens the roster store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/guildhall/internal/config"
	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/repository"
	"github.com/forgo/guildhall/internal/repository/sqlite"
	"github.com/forgo/guildhall/internal/service"
)

// Store bundles the repositories of one backend with its lifecycle
type Store struct {
	Driver  string
	Guilds  service.GuildRepository
	Players service.PlayerRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Open connects to the backend named by cfg.Store.Driver.
// SurrealDB gets its schema defined; SQLite runs its migrations.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Store.Driver {
	case config.DriverSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect surrealdb: %w", err)
		}
		if err := repository.DefineSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("define schema: %w", err)
		}
		logger.Info("connected to database",
			slog.String("driver", cfg.Store.Driver),
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Database),
		)
		return &Store{
			Driver:  cfg.Store.Driver,
			Guilds:  repository.NewGuildRepository(db),
			Players: repository.NewPlayerRepository(db),
			ping:    db.Ping,
			close:   db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened database",
			slog.String("driver", cfg.Store.Driver),
			slog.String("path", cfg.SQLite.Path),
		)
		return &Store{
			Driver:  cfg.Store.Driver,
			Guilds:  db.Guilds(),
			Players: db.Players(),
			ping:    db.Ping,
			close:   db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Ping checks that the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection
func (s *Store) Close() error {
	return s.close()
}
