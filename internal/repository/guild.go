package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

// GuildRepository handles guild data access
type GuildRepository struct {
	db database.Database
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db database.Database) *GuildRepository {
	return &GuildRepository{db: db}
}

// guildSelect projects a guild row together with its roster
const guildSelect = `
	SELECT *,
		(SELECT * FROM player WHERE guild = $parent.id ORDER BY created_on, id) AS members
	FROM guild`

// Create creates a new guild
func (r *GuildRepository) Create(ctx context.Context, guild *model.Guild) error {
	query := `
		CREATE guild CONTENT {
			name: $name,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name": guild.Name,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: guild name already exists", database.ErrDuplicate)
		}
		return err
	}

	rows := records(result, 0)
	if len(rows) == 0 {
		return errors.New("no result returned")
	}
	created := parseGuild(rows[0])
	guild.ID = created.ID
	guild.CreatedOn = created.CreatedOn
	guild.UpdatedOn = created.UpdatedOn
	if guild.Members == nil {
		guild.Members = []model.Player{}
	}
	return nil
}

// GetByID retrieves a guild with its members, or nil if it does not exist
func (r *GuildRepository) GetByID(ctx context.Context, id string) (*model.Guild, error) {
	query := guildSelect + ` WHERE id = type::record($id)`
	return r.getOne(ctx, query, map[string]interface{}{"id": id})
}

// GetByName retrieves a guild by its exact name, or nil if none matches
func (r *GuildRepository) GetByName(ctx context.Context, name string) (*model.Guild, error) {
	query := guildSelect + ` WHERE name = $name LIMIT 1`
	return r.getOne(ctx, query, map[string]interface{}{"name": name})
}

func (r *GuildRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Guild, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseGuild(data), nil
}

// List returns every guild with its members in creation order
func (r *GuildRepository) List(ctx context.Context) ([]*model.Guild, error) {
	query := guildSelect + ` ORDER BY created_on, id`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows := records(result, 0)
	guilds := make([]*model.Guild, 0, len(rows))
	for _, row := range rows {
		guilds = append(guilds, parseGuild(row))
	}
	return guilds, nil
}

// Update renames a guild
func (r *GuildRepository) Update(ctx context.Context, guild *model.Guild) error {
	query := `
		UPDATE guild SET
			name = $name,
			updated_on = time::now()
		WHERE id = type::record($id)
	`
	vars := map[string]interface{}{
		"id":   guild.ID,
		"name": guild.Name,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: guild name already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete deletes a guild and clears the guild reference of its members
func (r *GuildRepository) Delete(ctx context.Context, id string) error {
	vars := map[string]interface{}{"id": id}
	return database.NewAtomicBatch().
		Add(`UPDATE player SET guild = NONE, updated_on = time::now() WHERE guild = type::record($id)`, vars).
		Add(`DELETE guild WHERE id = type::record($id)`, vars).
		Execute(ctx, r.db)
}

func parseGuild(data map[string]interface{}) *model.Guild {
	guild := &model.Guild{
		ID:        convertRecordID(data["id"]),
		Name:      getString(data, "name"),
		Members:   []model.Player{},
		CreatedOn: parseTime(data["created_on"]),
		UpdatedOn: parseTime(data["updated_on"]),
	}
	if members, ok := data["members"].([]interface{}); ok {
		for _, m := range members {
			if row, ok := m.(map[string]interface{}); ok {
				guild.Members = append(guild.Members, *parsePlayer(row))
			}
		}
	}
	return guild
}
