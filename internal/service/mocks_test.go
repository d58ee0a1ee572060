package service

import (
	"context"

	"github.com/forgo/guildhall/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockGuildRepo struct {
	createFunc    func(ctx context.Context, guild *model.Guild) error
	getByIDFunc   func(ctx context.Context, id string) (*model.Guild, error)
	getByNameFunc func(ctx context.Context, name string) (*model.Guild, error)
	listFunc      func(ctx context.Context) ([]*model.Guild, error)
	updateFunc    func(ctx context.Context, guild *model.Guild) error
	deleteFunc    func(ctx context.Context, id string) error
}

func (m *mockGuildRepo) Create(ctx context.Context, guild *model.Guild) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, guild)
	}
	guild.ID = "guild:new"
	return nil
}

func (m *mockGuildRepo) GetByID(ctx context.Context, id string) (*model.Guild, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGuildRepo) GetByName(ctx context.Context, name string) (*model.Guild, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockGuildRepo) List(ctx context.Context) ([]*model.Guild, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.Guild{}, nil
}

func (m *mockGuildRepo) Update(ctx context.Context, guild *model.Guild) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, guild)
	}
	return nil
}

func (m *mockGuildRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockPlayerRepo struct {
	createFunc       func(ctx context.Context, player *model.Player) error
	getByIDFunc      func(ctx context.Context, id string) (*model.Player, error)
	getByNameFunc    func(ctx context.Context, name string) (*model.Player, error)
	listFunc         func(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error)
	updateFunc       func(ctx context.Context, player *model.Player) error
	deleteFunc       func(ctx context.Context, id string) error
	updateGuildFunc  func(ctx context.Context, playerID, guildID string) error
	assignGuildsFunc func(ctx context.Context, assignments []model.Assignment) error
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *model.Player) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, player)
	}
	player.ID = "player:new"
	return nil
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id string) (*model.Player, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlayerRepo) GetByName(ctx context.Context, name string) (*model.Player, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockPlayerRepo) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*model.Player{}, nil
}

func (m *mockPlayerRepo) Update(ctx context.Context, player *model.Player) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, player)
	}
	return nil
}

func (m *mockPlayerRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlayerRepo) UpdateGuild(ctx context.Context, playerID, guildID string) error {
	if m.updateGuildFunc != nil {
		return m.updateGuildFunc(ctx, playerID, guildID)
	}
	return nil
}

func (m *mockPlayerRepo) AssignGuilds(ctx context.Context, assignments []model.Assignment) error {
	if m.assignGuildsFunc != nil {
		return m.assignGuildsFunc(ctx, assignments)
	}
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func newPlayer(id string, class model.PlayerClass, xp int) *model.Player {
	return &model.Player{ID: id, Name: "name-" + id, Class: class, Experience: xp}
}
