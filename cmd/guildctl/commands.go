package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/rosterfile"
)

func newBalanceCmd(c *cli) *cobra.Command {
	var (
		capacity int
		players  []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Assign players without a guild to guilds",
		Long: `Assign every player without a guild, or only the players given with
--player, to the guild that most needs their class and otherwise carries the
least total experience. Guilds never exceed --capacity members.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd, func(ctx context.Context, svc *services) error {
				result, err := svc.players.Balance(ctx, &model.BalanceRequest{
					MaxGuildPlayers: capacity,
					PlayerIDs:       players,
					DryRun:          dryRun,
				})
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(cmd, result)
				}
				return printBalance(cmd, result)
			})
		},
	}

	cmd.Flags().IntVarP(&capacity, "capacity", "c", 0, "maximum players per guild (required)")
	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "player id to consider, repeatable (default: all players)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show decisions without writing them")
	_ = cmd.MarkFlagRequired("capacity")
	return cmd
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every player from its guild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd, func(ctx context.Context, svc *services) error {
				players, err := svc.players.Reset(ctx)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(cmd, players)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "reset %d players\n", len(players))
				return err
			})
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create guilds and players from a JSON roster file",
		Long: `Create guilds and players from a JSON roster file:

{
  "guilds":  [{"name": "Ironclad"}],
  "players": [{"name": "Aria", "class": "MAGE", "experience": 40, "guild": "Ironclad"}]
}

The file is checked before anything is written. Names must not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := rosterfile.Read(c.fs, args[0])
			if err != nil {
				return err
			}
			return c.withServices(cmd, func(ctx context.Context, svc *services) error {
				sum, err := rosterfile.NewImporter(svc.guilds, svc.players).Import(ctx, roster)
				if err != nil {
					return fmt.Errorf("import stopped after %d guilds and %d players: %w", sum.Guilds, sum.Players, err)
				}
				if c.jsonOut {
					return c.printJSON(cmd, sum)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d guilds and %d players\n", sum.Guilds, sum.Players)
				return err
			})
		},
	}
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every guild and player to a JSON roster file",
		Long: `Write every guild and player to a JSON roster file in the format
accepted by import. Guild membership is kept by guild name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd, func(ctx context.Context, svc *services) error {
				guilds, err := svc.guilds.List(ctx)
				if err != nil {
					return err
				}
				players, err := svc.players.List(ctx, model.PlayerFilter{})
				if err != nil {
					return err
				}

				roster := rosterfile.FromRoster(guilds, players)
				if err := rosterfile.Write(c.fs, args[0], roster); err != nil {
					return err
				}
				sum := rosterfile.Summary{Guilds: len(roster.Guilds), Players: len(roster.Players)}
				if c.jsonOut {
					return c.printJSON(cmd, sum)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d guilds and %d players to %s\n", sum.Guilds, sum.Players, args[0])
				return err
			})
		},
	}
}

func newGuildsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "guilds",
		Short: "List guilds with their members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd, func(ctx context.Context, svc *services) error {
				guilds, err := svc.guilds.List(ctx)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(cmd, guilds)
				}
				return printGuilds(cmd, guilds)
			})
		},
	}
}

func printBalance(cmd *cobra.Command, result *model.BalanceResult) error {
	players := make(map[string]string)
	guilds := make(map[string]string, len(result.Guilds))
	for _, g := range result.Guilds {
		guilds[g.ID] = g.Name
		for _, m := range g.Members {
			players[m.ID] = m.Name
		}
	}
	name := func(names map[string]string, id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tGUILD")
	for _, a := range result.Assignments {
		fmt.Fprintf(w, "%s\t%s\n", name(players, a.PlayerID), name(guilds, a.GuildID))
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(w, "%s\t(skipped: %s)\n", s.Name, s.Reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	verb := "assigned"
	if !result.Applied {
		verb = "would assign"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %d players, %d skipped\n", verb, len(result.Assignments), len(result.Skipped))
	return err
}

func printGuilds(cmd *cobra.Command, guilds []*model.Guild) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMEMBERS\tEXPERIENCE\tCLASSES")
	for _, g := range guilds {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", g.Name, len(g.Members), g.Load(), classSummary(g))
	}
	return w.Flush()
}

// classSummary renders member counts per class, e.g. "WARRIOR:2 CLERIC:1"
func classSummary(g *model.Guild) string {
	counts := make(map[model.PlayerClass]int)
	for _, m := range g.Members {
		counts[m.Class]++
	}
	parts := make([]string, 0, len(counts))
	for _, class := range model.AllClasses {
		if n := counts[class]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", class, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
