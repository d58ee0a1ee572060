package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/guildhall/internal/database"
	"github.com/forgo/guildhall/internal/model"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db database.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db database.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create creates a new player
func (r *PlayerRepository) Create(ctx context.Context, player *model.Player) error {
	query := `
		CREATE player CONTENT {
			name: $name,
			class: $class,
			experience: $experience,
			guild: IF $guild IS NOT NULL THEN type::record($guild) ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":       player.Name,
		"class":      string(player.Class),
		"experience": player.Experience,
		"guild":      nilIfEmpty(player.GuildID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: player name already exists", database.ErrDuplicate)
		}
		return err
	}

	rows := records(result, 0)
	if len(rows) == 0 {
		return errors.New("no result returned")
	}
	created := parsePlayer(rows[0])
	player.ID = created.ID
	player.CreatedOn = created.CreatedOn
	player.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a player by ID, or nil if it does not exist
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*model.Player, error) {
	return r.getOne(ctx, `SELECT * FROM player WHERE id = type::record($id)`, map[string]interface{}{"id": id})
}

// GetByName retrieves a player by exact name, or nil if none matches
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*model.Player, error) {
	return r.getOne(ctx, `SELECT * FROM player WHERE name = $name LIMIT 1`, map[string]interface{}{"name": name})
}

func (r *PlayerRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Player, error) {
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
	return parsePlayer(data), nil
}

// List returns the players matching the filter in creation order
func (r *PlayerRepository) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	query, vars := buildPlayerListQuery(filter)

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := records(result, 0)
	players := make([]*model.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, parsePlayer(row))
	}
	return players, nil
}

func buildPlayerListQuery(filter model.PlayerFilter) (string, map[string]interface{}) {
	var conditions []string
	vars := make(map[string]interface{})

	if filter.Name != "" {
		conditions = append(conditions, "string::contains(string::lowercase(name), string::lowercase($name))")
		vars["name"] = filter.Name
	}
	if filter.Class != "" {
		conditions = append(conditions, "class = $class")
		vars["class"] = string(filter.Class)
	}
	if filter.MinExperience != nil {
		conditions = append(conditions, "experience >= $min_experience")
		vars["min_experience"] = *filter.MinExperience
	}
	if filter.MaxExperience != nil {
		conditions = append(conditions, "experience <= $max_experience")
		vars["max_experience"] = *filter.MaxExperience
	}

	query := "SELECT * FROM player"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_on, id"
	return query, vars
}

// Update writes every mutable player field
func (r *PlayerRepository) Update(ctx context.Context, player *model.Player) error {
	query := `
		UPDATE player SET
			name = $name,
			class = $class,
			experience = $experience,
			guild = IF $guild IS NOT NULL THEN type::record($guild) ELSE NONE END,
			updated_on = time::now()
		WHERE id = type::record($id)
	`
	vars := map[string]interface{}{
		"id":         player.ID,
		"name":       player.Name,
		"class":      string(player.Class),
		"experience": player.Experience,
		"guild":      nilIfEmpty(player.GuildID),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: player name already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete deletes a player
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	return r.db.Execute(ctx, `DELETE player WHERE id = type::record($id)`, map[string]interface{}{"id": id})
}

// UpdateGuild sets or clears (guildID == "") one player's guild reference
func (r *PlayerRepository) UpdateGuild(ctx context.Context, playerID, guildID string) error {
	query, vars := assignmentStatement(model.Assignment{PlayerID: playerID, GuildID: guildID})
	return r.db.Execute(ctx, query, vars)
}

// AssignGuilds applies every assignment in one transaction
func (r *PlayerRepository) AssignGuilds(ctx context.Context, assignments []model.Assignment) error {
	batch := database.NewAtomicBatch()
	for _, a := range assignments {
		batch.Add(assignmentStatement(a))
	}
	return batch.Execute(ctx, r.db)
}

func assignmentStatement(a model.Assignment) (string, map[string]interface{}) {
	if a.Clears() {
		return `UPDATE player SET guild = NONE, updated_on = time::now() WHERE id = type::record($id)`,
			map[string]interface{}{"id": a.PlayerID}
	}
	return `UPDATE player SET guild = type::record($guild), updated_on = time::now() WHERE id = type::record($id)`,
		map[string]interface{}{"id": a.PlayerID, "guild": a.GuildID}
}

func parsePlayer(data map[string]interface{}) *model.Player {
	return &model.Player{
		ID:         convertRecordID(data["id"]),
		Name:       getString(data, "name"),
		Class:      model.PlayerClass(getString(data, "class")),
		Experience: getInt(data, "experience"),
		GuildID:    convertRecordID(data["guild"]),
		CreatedOn:  parseTime(data["created_on"]),
		UpdatedOn:  parseTime(data["updated_on"]),
	}
}
