package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/config"
	"github.com/forgo/guildhall/internal/service"
	"github.com/forgo/guildhall/internal/store"
)

// cli carries what every subcommand needs
type cli struct {
	fs      afero.Fs
	environ map[string]string // nil reads the process environment
	jsonOut bool
	verbose bool
}

// services is one opened store with the services built on it
type services struct {
	guilds  *service.GuildService
	players *service.PlayerService
}

func newRootCmd(fs afero.Fs, environ map[string]string) *cobra.Command {
	c := &cli{fs: fs, environ: environ}

	root := &cobra.Command{
		Use:           "guildctl",
		Short:         "Manage guild rosters and run balancing",
		SilenceUsage:  true,
		SilenceErrors: false,
		Long: `guildctl talks to the roster store directly, using the same
configuration as the API server (STORE_DRIVER, DB_*, SQLITE_PATH,
BALANCE_MIN_CAPACITY, BALANCE_APPLY_MODE).

Runs from guildctl and from the server are only serialized within one
process; do not balance from both at the same time.`,
	}

	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newBalanceCmd(c),
		newResetCmd(c),
		newImportCmd(c),
		newExportCmd(c),
		newGuildsCmd(c),
	)
	return root
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.environ == nil {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(c.environ)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withServices opens the configured store, builds the services and runs fn.
// The store is closed when fn returns.
func (c *cli) withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *services) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.logger(cmd)

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return fn(ctx, &services{
		guilds: service.NewGuildService(service.GuildServiceConfig{GuildRepo: st.Guilds}),
		players: service.NewPlayerService(service.PlayerServiceConfig{
			PlayerRepo: st.Players,
			GuildRepo:  st.Guilds,
			Engine:     balance.New(balance.Config{MinCapacity: cfg.Balance.MinCapacity}),
			ApplyMode:  service.ApplyMode(cfg.Balance.ApplyMode),
			Logger:     logger,
		}),
	})
}

func (c *cli) printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
