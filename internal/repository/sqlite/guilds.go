package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

// GuildStore implements guild persistence on top of Store.
type GuildStore struct {
	store *Store
}

// Create inserts a guild and fills in its ID and timestamps.
func (g *GuildStore) Create(ctx context.Context, guild *model.Guild) error {
	if err := g.store.ready(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()
	id := uuid.NewString()

	_, err := g.store.sqlDB.ExecContext(ctx,
		`INSERT INTO guilds (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, guild.Name, toMillis(now), toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: guild name already exists", database.ErrDuplicate)
		}
		return fmt.Errorf("create guild: %w", err)
	}

	guild.ID = id
	guild.CreatedOn = fromMillis(toMillis(now))
	guild.UpdatedOn = guild.CreatedOn
	if guild.Members == nil {
		guild.Members = []model.Player{}
	}
	return nil
}

// GetByID returns a guild with its members, or nil if it does not exist.
func (g *GuildStore) GetByID(ctx context.Context, id string) (*model.Guild, error) {
	return g.getOne(ctx, `SELECT id, name, created_at, updated_at FROM guilds WHERE id = ?`, id)
}

// GetByName returns the guild with the exact name, or nil if none matches.
func (g *GuildStore) GetByName(ctx context.Context, name string) (*model.Guild, error) {
	return g.getOne(ctx, `SELECT id, name, created_at, updated_at FROM guilds WHERE name = ?`, name)
}

func (g *GuildStore) getOne(ctx context.Context, query string, arg string) (*model.Guild, error) {
	if err := g.store.ready(ctx); err != nil {
		return nil, err
	}

	guild, err := scanGuild(g.store.sqlDB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guild: %w", err)
	}

	members, err := g.store.Players().listWhere(ctx, `WHERE guild_id = ?`, guild.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		guild.Members = append(guild.Members, *m)
	}
	return guild, nil
}

// List returns every guild with its members in creation order.
func (g *GuildStore) List(ctx context.Context) ([]*model.Guild, error) {
	if err := g.store.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := g.store.sqlDB.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM guilds ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}
	defer rows.Close()

	guilds := make([]*model.Guild, 0)
	byID := make(map[string]*model.Guild)
	for rows.Next() {
		guild, err := scanGuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guild: %w", err)
		}
		guilds = append(guilds, guild)
		byID[guild.ID] = guild
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guilds: %w", err)
	}

	members, err := g.store.Players().listWhere(ctx, `WHERE guild_id IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if guild, ok := byID[m.GuildID]; ok {
			guild.Members = append(guild.Members, *m)
		}
	}
	return guilds, nil
}

// Update renames a guild.
func (g *GuildStore) Update(ctx context.Context, guild *model.Guild) error {
	if err := g.store.ready(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()

	res, err := g.store.sqlDB.ExecContext(ctx,
		`UPDATE guilds SET name = ?, updated_at = ? WHERE id = ?`,
		guild.Name, toMillis(now), guild.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: guild name already exists", database.ErrDuplicate)
		}
		return fmt.Errorf("update guild: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: guild %s", database.ErrNotFound, guild.ID)
	}
	guild.UpdatedOn = fromMillis(toMillis(now))
	return nil
}

// Delete removes a guild. Members keep existing with no guild reference.
func (g *GuildStore) Delete(ctx context.Context, id string) error {
	if err := g.store.ready(ctx); err != nil {
		return err
	}
	if _, err := g.store.sqlDB.ExecContext(ctx, `DELETE FROM guilds WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGuild(row rowScanner) (*model.Guild, error) {
	var (
		guild              model.Guild
		createdAt, updated int64
	)
	if err := row.Scan(&guild.ID, &guild.Name, &createdAt, &updated); err != nil {
		return nil, err
	}
	guild.CreatedOn = fromMillis(createdAt)
	guild.UpdatedOn = fromMillis(updated)
	guild.Members = []model.Player{}
	return &guild, nil
}
