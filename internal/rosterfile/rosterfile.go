package rosterfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/forgo/guildhall/internal/model"
)

// ErrInvalidRoster is returned when a roster file is well-formed JSON but
// describes an inconsistent roster
var ErrInvalidRoster = errors.New("invalid roster file")

// File is the on-disk roster format:
//
//	{
//	  "guilds":  [{"name": "Ironclad"}],
//	  "players": [{"name": "Aria", "class": "MAGE", "experience": 40, "guild": "Ironclad"}]
//	}
//
// Players reference guilds by name. A player without "guild" is imported
// unassigned.
type File struct {
	Guilds  []GuildEntry  `json:"guilds"`
	Players []PlayerEntry `json:"players"`
}

// GuildEntry is one guild in a roster file
type GuildEntry struct {
	Name string `json:"name"`
}

// PlayerEntry is one player in a roster file
type PlayerEntry struct {
	Name       string            `json:"name"`
	Class      model.PlayerClass `json:"class"`
	Experience int               `json:"experience"`
	Guild      string            `json:"guild,omitempty"`
}

// Read loads and checks a roster file from fs
func Read(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}

	if err := f.Check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Write stores a roster file on fs, creating parent directories
func Write(fs afero.Fs, path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding roster file: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating roster directory: %w", err)
	}
	return afero.WriteFile(fs, path, append(data, '\n'), 0o644)
}

// FromRoster builds a roster file from stored guilds and players. Guild
// references become guild names; a reference to a guild not in guilds is
// dropped so the file stays importable.
func FromRoster(guilds []*model.Guild, players []*model.Player) *File {
	names := make(map[string]string, len(guilds))
	f := &File{
		Guilds:  make([]GuildEntry, 0, len(guilds)),
		Players: make([]PlayerEntry, 0, len(players)),
	}
	for _, g := range guilds {
		names[g.ID] = g.Name
		f.Guilds = append(f.Guilds, GuildEntry{Name: g.Name})
	}
	for _, p := range players {
		f.Players = append(f.Players, PlayerEntry{
			Name:       p.Name,
			Class:      p.Class,
			Experience: p.Experience,
			Guild:      names[p.GuildID],
		})
	}
	return f
}

// Check validates entries and cross references. Every problem is reported.
func (f *File) Check() error {
	var problems []string

	guilds := make(map[string]bool, len(f.Guilds))
	for i, g := range f.Guilds {
		req := model.CreateGuildRequest{Name: g.Name}
		for _, fe := range req.Validate() {
			problems = append(problems, fmt.Sprintf("guilds[%d].%s: %s", i, fe.Field, fe.Message))
		}
		key := strings.ToLower(strings.TrimSpace(g.Name))
		if key != "" && guilds[key] {
			problems = append(problems, fmt.Sprintf("guilds[%d].name: duplicate guild %q", i, g.Name))
		}
		guilds[key] = true
	}

	players := make(map[string]bool, len(f.Players))
	for i, p := range f.Players {
		xp := p.Experience
		req := model.CreatePlayerRequest{Name: p.Name, Class: p.Class, Experience: &xp}
		for _, fe := range req.Validate() {
			problems = append(problems, fmt.Sprintf("players[%d].%s: %s", i, fe.Field, fe.Message))
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key != "" && players[key] {
			problems = append(problems, fmt.Sprintf("players[%d].name: duplicate player %q", i, p.Name))
		}
		players[key] = true
		if p.Guild != "" && !guilds[strings.ToLower(strings.TrimSpace(p.Guild))] {
			problems = append(problems, fmt.Sprintf("players[%d].guild: unknown guild %q", i, p.Guild))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRoster, strings.Join(problems, "; "))
	}
	return nil
}

// GuildCreator creates guilds
type GuildCreator interface {
	Create(ctx context.Context, req *model.CreateGuildRequest) (*model.Guild, error)
}

// PlayerCreator creates players
type PlayerCreator interface {
	Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)
}

// Summary counts what an import created
type Summary struct {
	Guilds  int `json:"guilds"`
	Players int `json:"players"`
}

// Importer seeds a store from a roster file through the services, so name
// uniqueness and validation apply exactly as they do over HTTP
type Importer struct {
	guilds  GuildCreator
	players PlayerCreator
}

// NewImporter creates a new importer
func NewImporter(guilds GuildCreator, players PlayerCreator) *Importer {
	return &Importer{guilds: guilds, players: players}
}

// Import creates the file's guilds and then its players. It stops at the
// first failure; entries created before it are kept and counted.
func (im *Importer) Import(ctx context.Context, f *File) (*Summary, error) {
	sum := &Summary{}
	ids := make(map[string]string, len(f.Guilds))

	for _, g := range f.Guilds {
		guild, err := im.guilds.Create(ctx, &model.CreateGuildRequest{Name: g.Name})
		if err != nil {
			return sum, fmt.Errorf("guild %q: %w", g.Name, err)
		}
		ids[strings.ToLower(strings.TrimSpace(g.Name))] = guild.ID
		sum.Guilds++
	}

	for _, p := range f.Players {
		xp := p.Experience
		req := &model.CreatePlayerRequest{Name: p.Name, Class: p.Class, Experience: &xp}
		if p.Guild != "" {
			id, ok := ids[strings.ToLower(strings.TrimSpace(p.Guild))]
			if !ok {
				return sum, fmt.Errorf("player %q: %w: unknown guild %q", p.Name, ErrInvalidRoster, p.Guild)
			}
			req.GuildID = id
		}
		if _, err := im.players.Create(ctx, req); err != nil {
			return sum, fmt.Errorf("player %q: %w", p.Name, err)
		}
		sum.Players++
	}

	return sum, nil
}
