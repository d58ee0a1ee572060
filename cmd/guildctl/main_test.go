package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/rosterfile"
)

const roster = `{
  "guilds": [{"name": "Ironclad"}, {"name": "Dawnward"}],
  "players": [
    {"name": "Aria", "class": "MAGE", "experience": 50},
    {"name": "Bram", "class": "WARRIOR", "experience": 50},
    {"name": "Cass", "class": "CLERIC", "experience": 60},
    {"name": "Dain", "class": "WARRIOR", "experience": 60},
    {"name": "Edda", "class": "CLERIC", "experience": 60},
    {"name": "Finn", "class": "ARCHER", "experience": 60}
  ]
}`

type harness struct {
	t   *testing.T
	fs  afero.Fs
	env map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/roster.json", []byte(roster), 0o644))
	return &harness{
		t:  t,
		fs: fs,
		env: map[string]string{
			"STORE_DRIVER": "sqlite",
			"SQLITE_PATH":  filepath.Join(t.TempDir(), "guildhall.db"),
		},
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(h.fs, h.env)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestImportThenBalance(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("import", "/roster.json")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 guilds and 6 players")

	out, err = h.run("balance", "--capacity", "3", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would assign 6 players, 0 skipped")

	// Dry run wrote nothing
	out, err = h.run("guilds", "--json")
	require.NoError(t, err)
	var guilds []*model.Guild
	require.NoError(t, json.Unmarshal([]byte(out), &guilds))
	for _, g := range guilds {
		assert.Empty(t, g.Members, g.Name)
	}

	out, err = h.run("balance", "--capacity", "3", "--json")
	require.NoError(t, err)
	var result model.BalanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Applied)
	assert.Len(t, result.Assignments, 6)

	out, err = h.run("guilds", "--json")
	require.NoError(t, err)
	guilds = nil
	require.NoError(t, json.Unmarshal([]byte(out), &guilds))
	require.Len(t, guilds, 2)
	for _, g := range guilds {
		assert.Len(t, g.Members, 3, g.Name)
		assert.Equal(t, 170, g.Load(), g.Name)
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("import", "/roster.json")
	require.NoError(t, err)
	_, err = h.run("balance", "--capacity", "3")
	require.NoError(t, err)

	out, err := h.run("reset")
	require.NoError(t, err)
	assert.Contains(t, out, "reset 6 players")

	out, err = h.run("guilds")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Ironclad")
	assert.NotContains(t, out, "WARRIOR:")
}

func TestExportThenImport(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", "/roster.json")
	require.NoError(t, err)
	_, err = h.run("balance", "--capacity", "3")
	require.NoError(t, err)

	out, err := h.run("export", "/backup/roster.json")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 guilds and 6 players to /backup/roster.json")

	exported, err := rosterfile.Read(h.fs, "/backup/roster.json")
	require.NoError(t, err)
	for _, p := range exported.Players {
		assert.NotEmpty(t, p.Guild, p.Name)
	}

	// A fresh store seeded from the export has the same rosters
	h.env["SQLITE_PATH"] = filepath.Join(t.TempDir(), "restored.db")
	out, err = h.run("import", "/backup/roster.json")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 guilds and 6 players")

	out, err = h.run("guilds", "--json")
	require.NoError(t, err)
	var guilds []*model.Guild
	require.NoError(t, json.Unmarshal([]byte(out), &guilds))
	require.Len(t, guilds, 2)
	for _, g := range guilds {
		assert.Len(t, g.Members, 3, g.Name)
		assert.Equal(t, 170, g.Load(), g.Name)
	}
}

func TestBalance_Errors(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", "/roster.json")
	require.NoError(t, err)

	_, err = h.run("balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")

	_, err = h.run("balance", "--capacity", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, balance.ErrInvalidCapacity)
}

func TestImport_InvalidFile(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/bad.json", []byte(`{"players": [{"name": "Zed", "class": "BARD", "experience": 1}]}`), 0o644))

	_, err := h.run("import", "/bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid roster file")

	_, err = h.run("import")
	require.Error(t, err)
}
