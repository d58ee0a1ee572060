package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

const playerColumns = `id, name, class, experience, guild_id, created_at, updated_at`

// PlayerStore implements player persistence on top of Store.
type PlayerStore struct {
	store *Store
}

// Create inserts a player and fills in its ID and timestamps.
func (p *PlayerStore) Create(ctx context.Context, player *model.Player) error {
	if err := p.store.ready(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()
	id := uuid.NewString()

	_, err := p.store.sqlDB.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, player.Name, string(player.Class), player.Experience, nullString(player.GuildID), toMillis(now), toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player name already exists", database.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: guild %s", database.ErrNotFound, player.GuildID)
		}
		return fmt.Errorf("create player: %w", err)
	}

	player.ID = id
	player.CreatedOn = fromMillis(toMillis(now))
	player.UpdatedOn = player.CreatedOn
	return nil
}

// GetByID returns a player, or nil if it does not exist.
func (p *PlayerStore) GetByID(ctx context.Context, id string) (*model.Player, error) {
	return p.getOne(ctx, `WHERE id = ?`, id)
}

// GetByName returns the player with the exact name, or nil if none matches.
func (p *PlayerStore) GetByName(ctx context.Context, name string) (*model.Player, error) {
	return p.getOne(ctx, `WHERE name = ?`, name)
}

func (p *PlayerStore) getOne(ctx context.Context, where string, arg string) (*model.Player, error) {
	if err := p.store.ready(ctx); err != nil {
		return nil, err
	}
	row := p.store.sqlDB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players `+where, arg)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

// List returns the players matching the filter in creation order.
func (p *PlayerStore) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	if err := p.store.ready(ctx); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if filter.Name != "" {
		conditions = append(conditions, `instr(lower(name), lower(?)) > 0`)
		args = append(args, filter.Name)
	}
	if filter.Class != "" {
		conditions = append(conditions, `class = ?`)
		args = append(args, string(filter.Class))
	}
	if filter.MinExperience != nil {
		conditions = append(conditions, `experience >= ?`)
		args = append(args, *filter.MinExperience)
	}
	if filter.MaxExperience != nil {
		conditions = append(conditions, `experience <= ?`)
		args = append(args, *filter.MaxExperience)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return p.listWhere(ctx, where, args...)
}

func (p *PlayerStore) listWhere(ctx context.Context, where string, args ...any) ([]*model.Player, error) {
	rows, err := p.store.sqlDB.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players `+where+` ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]*model.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// Update writes every mutable player field.
func (p *PlayerStore) Update(ctx context.Context, player *model.Player) error {
	if err := p.store.ready(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()

	res, err := p.store.sqlDB.ExecContext(ctx,
		`UPDATE players SET name = ?, class = ?, experience = ?, guild_id = ?, updated_at = ? WHERE id = ?`,
		player.Name, string(player.Class), player.Experience, nullString(player.GuildID), toMillis(now), player.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player name already exists", database.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: guild %s", database.ErrNotFound, player.GuildID)
		}
		return fmt.Errorf("update player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: player %s", database.ErrNotFound, player.ID)
	}
	player.UpdatedOn = fromMillis(toMillis(now))
	return nil
}

// Delete removes a player.
func (p *PlayerStore) Delete(ctx context.Context, id string) error {
	if err := p.store.ready(ctx); err != nil {
		return err
	}
	if _, err := p.store.sqlDB.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

// UpdateGuild sets or clears (guildID == "") one player's guild reference.
func (p *PlayerStore) UpdateGuild(ctx context.Context, playerID, guildID string) error {
	if err := p.store.ready(ctx); err != nil {
		return err
	}
	return assign(ctx, p.store.sqlDB, model.Assignment{PlayerID: playerID, GuildID: guildID}, time.Now())
}

// AssignGuilds applies every assignment in one transaction. If any assignment
// fails, none are applied.
func (p *PlayerStore) AssignGuilds(ctx context.Context, assignments []model.Assignment) error {
	if err := p.store.ready(ctx); err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}

	tx, err := p.store.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assign: %w", err)
	}
	now := time.Now()
	for _, a := range assignments {
		if err := assign(ctx, tx, a, now); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func assign(ctx context.Context, db execer, a model.Assignment, now time.Time) error {
	res, err := db.ExecContext(ctx,
		`UPDATE players SET guild_id = ?, updated_at = ? WHERE id = ?`,
		nullString(a.GuildID), toMillis(now), a.PlayerID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: guild %s", database.ErrNotFound, a.GuildID)
		}
		return fmt.Errorf("assign player %s: %w", a.PlayerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: player %s", database.ErrNotFound, a.PlayerID)
	}
	return nil
}

func scanPlayer(row rowScanner) (*model.Player, error) {
	var (
		player             model.Player
		class              string
		guildID            sql.NullString
		createdAt, updated int64
	)
	if err := row.Scan(&player.ID, &player.Name, &class, &player.Experience, &guildID, &createdAt, &updated); err != nil {
		return nil, err
	}
	player.Class = model.PlayerClass(class)
	player.GuildID = guildID.String
	player.CreatedOn = fromMillis(createdAt)
	player.UpdatedOn = fromMillis(updated)
	return &player, nil
}
