package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

// PlayerRepository defines the interface for player storage
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) error
	GetByID(ctx context.Context, id string) (*model.Player, error)
	GetByName(ctx context.Context, name string) (*model.Player, error)
	List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error)
	Update(ctx context.Context, player *model.Player) error
	Delete(ctx context.Context, id string) error

	// UpdateGuild sets or clears (guildID == "") one player's guild reference
	UpdateGuild(ctx context.Context, playerID, guildID string) error
	// AssignGuilds applies every assignment or none of them
	AssignGuilds(ctx context.Context, assignments []model.Assignment) error
}

// ApplyMode controls how balancing decisions are persisted
type ApplyMode string

const (
	// ApplyAtomic persists every decision in one store transaction
	ApplyAtomic ApplyMode = "atomic"
	// ApplyBestEffort persists decisions one by one and continues past failures
	ApplyBestEffort ApplyMode = "best_effort"
)

// PlayerService handles player business logic, including balancing
type PlayerService struct {
	playerRepo PlayerRepository
	guildRepo  GuildRepository
	engine     *balance.Engine
	applyMode  ApplyMode
	logger     *slog.Logger

	// mu serializes snapshot-then-apply cycles (Balance, Reset)
	mu sync.Mutex
}

// PlayerServiceConfig holds configuration for the player service
type PlayerServiceConfig struct {
	PlayerRepo PlayerRepository
	GuildRepo  GuildRepository
	Engine     *balance.Engine // Optional, uses balance defaults if nil
	ApplyMode  ApplyMode       // Optional, defaults to ApplyAtomic
	Logger     *slog.Logger    // Optional, uses slog.Default() if nil
}

// NewPlayerService creates a new player service
func NewPlayerService(cfg PlayerServiceConfig) *PlayerService {
	engine := cfg.Engine
	if engine == nil {
		engine = balance.New(balance.Config{})
	}
	mode := cfg.ApplyMode
	if mode == "" {
		mode = ApplyAtomic
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerService{
		playerRepo: cfg.PlayerRepo,
		guildRepo:  cfg.GuildRepo,
		engine:     engine,
		applyMode:  mode,
		logger:     logger,
	}
}

// MinCapacity returns the smallest max guild players Balance accepts
func (s *PlayerService) MinCapacity() int {
	return s.engine.MinCapacity()
}

// Create creates a player with a unique name
func (s *PlayerService) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	if err := validation(req.Validate()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}
	if req.GuildID != "" {
		if err := s.ensureGuild(ctx, req.GuildID); err != nil {
			return nil, err
		}
	}

	player := &model.Player{
		Name:       name,
		Class:      req.Class,
		Experience: *req.Experience,
		GuildID:    req.GuildID,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, translatePlayerErr(err)
	}
	return player, nil
}

// Get retrieves a player
func (s *PlayerService) Get(ctx context.Context, id string) (*model.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// List returns the players matching the filter
func (s *PlayerService) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	return s.playerRepo.List(ctx, filter)
}

// Update applies the fields present in the request
func (s *PlayerService) Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error) {
	if err := validation(req.Validate()); err != nil {
		return nil, err
	}

	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != player.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
			player.Name = name
		}
	}
	if req.Class != nil {
		player.Class = *req.Class
	}
	if req.Experience != nil {
		player.Experience = *req.Experience
	}
	if req.GuildID != nil {
		if *req.GuildID != "" && *req.GuildID != player.GuildID {
			if err := s.ensureGuild(ctx, *req.GuildID); err != nil {
				return nil, err
			}
		}
		player.GuildID = *req.GuildID
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, translatePlayerErr(err)
	}
	return player, nil
}

// Delete removes a player
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.playerRepo.Delete(ctx, id)
}

func (s *PlayerService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrPlayerNameExists
	}
	return nil
}

func (s *PlayerService) ensureGuild(ctx context.Context, guildID string) error {
	guild, err := s.guildRepo.GetByID(ctx, guildID)
	if err != nil {
		return err
	}
	if guild == nil {
		return ErrGuildNotFound
	}
	return nil
}

func translatePlayerErr(err error) error {
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return ErrPlayerNameExists
	case errors.Is(err, database.ErrNotFound):
		return ErrGuildNotFound
	default:
		return err
	}
}
