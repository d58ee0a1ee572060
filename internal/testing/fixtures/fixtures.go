// Package fixtures provides roster factories for integration tests.
//
// A Factory writes through repository interfaces, so the same fixtures seed
// the SurrealDB and the SQLite stores.
//
// Usage:
//
//	f := fixtures.New(guildRepo, playerRepo)
//	guild := f.CreateGuild(t)
//	f.CreatePlayer(t, model.ClassCleric, 40, fixtures.InGuild(guild))
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/service"
)

// Factory creates test entities in a store
type Factory struct {
	guilds  service.GuildRepository
	players service.PlayerRepository
}

// New creates a new fixture factory
func New(guilds service.GuildRepository, players service.PlayerRepository) *Factory {
	return &Factory{guilds: guilds, players: players}
}

// randomID generates a random hex suffix for unique names
func randomID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Guild Fixtures
// ============================================================================

// CreateGuild creates a guild with a unique name, or the given one
func (f *Factory) CreateGuild(t *testing.T, name ...string) *model.Guild {
	t.Helper()

	g := &model.Guild{Name: "guild_" + randomID()}
	if len(name) > 0 {
		g.Name = name[0]
	}
	if err := f.guilds.Create(ctx(t), g); err != nil {
		t.Fatalf("fixtures: create guild %q: %v", g.Name, err)
	}
	return g
}

// CreateGuilds creates n guilds
func (f *Factory) CreateGuilds(t *testing.T, n int) []*model.Guild {
	t.Helper()
	out := make([]*model.Guild, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.CreateGuild(t))
	}
	return out
}

// ============================================================================
// Player Fixtures
// ============================================================================

// PlayerOpt customizes player creation
type PlayerOpt func(*model.Player)

// InGuild places the player in guild
func InGuild(guild *model.Guild) PlayerOpt {
	return func(p *model.Player) { p.GuildID = guild.ID }
}

// Named sets the player name
func Named(name string) PlayerOpt {
	return func(p *model.Player) { p.Name = name }
}

// CreatePlayer creates a player with a unique name
func (f *Factory) CreatePlayer(t *testing.T, class model.PlayerClass, experience int, opts ...PlayerOpt) *model.Player {
	t.Helper()

	p := &model.Player{
		Name:       "player_" + randomID(),
		Class:      class,
		Experience: experience,
	}
	for _, fn := range opts {
		fn(p)
	}
	if err := f.players.Create(ctx(t), p); err != nil {
		t.Fatalf("fixtures: create player %q: %v", p.Name, err)
	}
	return p
}

// CreateParty creates one unassigned player per macro-role:
// a warrior, a cleric and a mage, all with the given experience
func (f *Factory) CreateParty(t *testing.T, experience int) []*model.Player {
	t.Helper()
	return []*model.Player{
		f.CreatePlayer(t, model.ClassWarrior, experience),
		f.CreatePlayer(t, model.ClassCleric, experience),
		f.CreatePlayer(t, model.ClassMage, experience),
	}
}
