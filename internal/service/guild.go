package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

// GuildRepository defines the interface for guild storage
type GuildRepository interface {
	Create(ctx context.Context, guild *model.Guild) error
	GetByID(ctx context.Context, id string) (*model.Guild, error)
	GetByName(ctx context.Context, name string) (*model.Guild, error)
	List(ctx context.Context) ([]*model.Guild, error)
	Update(ctx context.Context, guild *model.Guild) error
	Delete(ctx context.Context, id string) error
}

// GuildService handles guild business logic
type GuildService struct {
	guildRepo GuildRepository
}

// GuildServiceConfig holds configuration for the guild service
type GuildServiceConfig struct {
	GuildRepo GuildRepository
}

// NewGuildService creates a new guild service
func NewGuildService(cfg GuildServiceConfig) *GuildService {
	return &GuildService{
		guildRepo: cfg.GuildRepo,
	}
}

// Create creates a guild with a unique name
func (s *GuildService) Create(ctx context.Context, req *model.CreateGuildRequest) (*model.Guild, error) {
	if err := validation(req.Validate()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	existing, err := s.guildRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrGuildNameExists
	}

	guild := &model.Guild{Name: name, Members: []model.Player{}}
	if err := s.guildRepo.Create(ctx, guild); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrGuildNameExists
		}
		return nil, err
	}
	return guild, nil
}

// Get retrieves a guild with its members
func (s *GuildService) Get(ctx context.Context, id string) (*model.Guild, error) {
	guild, err := s.guildRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, ErrGuildNotFound
	}
	return guild, nil
}

// List returns every guild with its members
func (s *GuildService) List(ctx context.Context) ([]*model.Guild, error) {
	return s.guildRepo.List(ctx)
}

// Update renames a guild, keeping names unique
func (s *GuildService) Update(ctx context.Context, id string, req *model.UpdateGuildRequest) (*model.Guild, error) {
	if err := validation(req.Validate()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	guild, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if guild.Name == name {
		return guild, nil
	}

	existing, err := s.guildRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrGuildNameExists
	}

	guild.Name = name
	if err := s.guildRepo.Update(ctx, guild); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrGuildNameExists
		}
		return nil, err
	}
	return guild, nil
}

// Delete removes a guild. Its members become unassigned.
func (s *GuildService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.guildRepo.Delete(ctx, id)
}
