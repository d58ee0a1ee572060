package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/model"
)

const skipReasonNoCapacity = "no guild has free capacity"

// Balance distributes unassigned players across guilds and persists the
// decisions. Runs are serialized per service so no two snapshot-then-apply
// cycles interleave.
//
// With req.DryRun the decisions are returned with projected rosters and
// nothing is written.
func (s *PlayerService) Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guilds, err := s.guildRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load guilds: %w", err)
	}
	candidates, err := s.candidates(ctx, req.PlayerIDs)
	if err != nil {
		return nil, err
	}

	decided, err := s.engine.Balance(guilds, candidates, req.MaxGuildPlayers)
	if err != nil {
		return nil, err
	}

	result := &model.BalanceResult{
		Assignments: decided.Assignments,
		Skipped:     make([]model.SkippedPlayer, 0, len(decided.Skipped)),
	}
	for _, p := range decided.Skipped {
		s.logger.Warn("No suitable guild found",
			slog.String("player_id", p.ID),
			slog.String("player_name", p.Name),
			slog.Int("max_guild_players", req.MaxGuildPlayers),
		)
		result.Skipped = append(result.Skipped, model.SkippedPlayer{
			PlayerID: p.ID,
			Name:     p.Name,
			Reason:   skipReasonNoCapacity,
		})
	}

	if req.DryRun {
		result.Guilds = project(guilds, candidates, decided.Assignments)
		return result, nil
	}

	if err := s.apply(ctx, decided.Assignments); err != nil {
		return nil, err
	}
	result.Applied = true

	s.logger.Info("balance applied",
		slog.Int("assigned", len(result.Assignments)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("guilds", len(guilds)),
	)

	result.Guilds, err = s.guildRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload guilds: %w", err)
	}
	return result, nil
}

// Reset clears the guild reference of every player and returns the players
// as stored afterwards.
func (s *PlayerService) Reset(ctx context.Context) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.playerRepo.List(ctx, model.PlayerFilter{})
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}

	if err := s.apply(ctx, balance.ResetAll(players)); err != nil {
		return nil, err
	}
	s.logger.Info("roster reset", slog.Int("players", len(players)))

	return s.playerRepo.List(ctx, model.PlayerFilter{})
}

// candidates loads the requested players in request order, or every player
// in store order when ids is empty.
func (s *PlayerService) candidates(ctx context.Context, ids []string) ([]*model.Player, error) {
	if len(ids) == 0 {
		players, err := s.playerRepo.List(ctx, model.PlayerFilter{})
		if err != nil {
			return nil, fmt.Errorf("load players: %w", err)
		}
		return players, nil
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		p, err := s.playerRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load player %s: %w", id, err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		players = append(players, p)
	}
	return players, nil
}

// apply persists decisions according to the configured apply mode
func (s *PlayerService) apply(ctx context.Context, decisions []model.Assignment) error {
	if len(decisions) == 0 {
		return nil
	}

	if s.applyMode == ApplyAtomic {
		if err := s.playerRepo.AssignGuilds(ctx, decisions); err != nil {
			s.logger.Error("atomic apply failed", slog.Int("decisions", len(decisions)), slog.String("error", err.Error()))
			return &ApplyError{Failed: playerIDs(decisions), Cause: err}
		}
		return nil
	}

	var (
		applied  []string
		failed   []string
		firstErr error
	)
	for i, d := range decisions {
		if err := ctx.Err(); err != nil {
			for _, rest := range decisions[i:] {
				failed = append(failed, rest.PlayerID)
			}
			if firstErr == nil {
				firstErr = err
			}
			break
		}
		if err := s.playerRepo.UpdateGuild(ctx, d.PlayerID, d.GuildID); err != nil {
			s.logger.Warn("assignment not applied",
				slog.String("player_id", d.PlayerID),
				slog.String("guild_id", d.GuildID),
				slog.String("error", err.Error()),
			)
			failed = append(failed, d.PlayerID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, d.PlayerID)
	}

	if len(failed) > 0 {
		return &ApplyError{Applied: applied, Failed: failed, Cause: firstErr}
	}
	return nil
}

func playerIDs(decisions []model.Assignment) []string {
	ids := make([]string, 0, len(decisions))
	for _, d := range decisions {
		ids = append(ids, d.PlayerID)
	}
	return ids
}

// project returns copies of guilds with the decided players appended
func project(guilds []*model.Guild, candidates []*model.Player, decisions []model.Assignment) []*model.Guild {
	byID := make(map[string]*model.Player, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	out := make([]*model.Guild, 0, len(guilds))
	index := make(map[string]*model.Guild, len(guilds))
	for _, g := range guilds {
		cp := *g
		cp.Members = append(make([]model.Player, 0, len(g.Members)), g.Members...)
		out = append(out, &cp)
		index[cp.ID] = &cp
	}
	for _, d := range decisions {
		p, ok := byID[d.PlayerID]
		g, found := index[d.GuildID]
		if !ok || !found {
			continue
		}
		member := *p
		member.GuildID = d.GuildID
		g.Members = append(g.Members, member)
	}
	return out
}
