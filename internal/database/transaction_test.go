package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	queries []string
	vars    []map[string]interface{}
	err     error
}

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.queries = append(r.queries, query)
	r.vars = append(r.vars, vars)
	return nil, r.err
}

func (r *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	_, err := r.Query(ctx, query, vars)
	return nil, err
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	tb := NewTxBuilder()
	tb.Add("UPDATE type::record($id) SET guild = type::record($guild)", map[string]interface{}{"id": "player:a", "guild": "guild:1"})
	tb.Add("UPDATE type::record($id) SET guild = NONE", map[string]interface{}{"id": "player:b"})

	query, vars := tb.Build()
	require.NotEmpty(t, query)

	assert.True(t, strings.HasPrefix(query, "BEGIN TRANSACTION;"))
	assert.True(t, strings.HasSuffix(query, "COMMIT TRANSACTION;"))
	assert.NotContains(t, query, "$id)")
	assert.Len(t, vars, 3)

	values := make(map[interface{}]bool)
	for _, v := range vars {
		values[v] = true
	}
	assert.True(t, values["player:a"])
	assert.True(t, values["player:b"])
	assert.True(t, values["guild:1"])
}

func TestTxBuilder_PrefixNamesDoNotCollide(t *testing.T) {
	tb := NewTxBuilder()
	mapping := tb.Add("SELECT * FROM player WHERE guild = $guild AND id != $guild_id", map[string]interface{}{
		"guild":    "guild:1",
		"guild_id": "player:x",
	})

	query, vars := tb.Build()
	assert.Contains(t, query, "$"+mapping["guild"]+" ")
	assert.Contains(t, query, "$"+mapping["guild_id"]+";")
	assert.Equal(t, "guild:1", vars[mapping["guild"]])
	assert.Equal(t, "player:x", vars[mapping["guild_id"]])
}

func TestTxBuilder_Empty(t *testing.T) {
	query, vars := NewTxBuilder().Build()
	assert.Empty(t, query)
	assert.Nil(t, vars)

	db := &recordingDB{}
	results, err := ExecuteTransaction(context.Background(), db, NewTxBuilder())
	assert.NoError(t, err)
	assert.Nil(t, results)
	assert.Empty(t, db.queries)
}

func TestAtomicBatch_SingleRoundTrip(t *testing.T) {
	db := &recordingDB{}
	batch := NewAtomicBatch().
		Add("UPDATE type::record($id) SET guild = NONE", map[string]interface{}{"id": "player:a"}).
		Add("UPDATE type::record($id) SET guild = NONE", map[string]interface{}{"id": "player:b"})

	require.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Execute(context.Background(), db))
	require.Len(t, db.queries, 1)
	assert.Equal(t, 2, strings.Count(db.queries[0], "UPDATE"))
}

func TestAtomicBatch_EmptySkipsRoundTrip(t *testing.T) {
	db := &recordingDB{}
	batch := NewAtomicBatch()

	require.Equal(t, 0, batch.Len())
	require.NoError(t, batch.Execute(context.Background(), db))
	assert.Empty(t, db.queries)
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	db := &recordingDB{err: ErrQuery}
	err := NewAtomicBatch().Add("DELETE guild", nil).Execute(context.Background(), db)
	assert.True(t, errors.Is(err, ErrQuery))
}

func TestStatementResult(t *testing.T) {
	results := []interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{"a", "b"}},
		map[string]interface{}{"status": "OK", "result": map[string]interface{}{"count": 1}},
		"garbage",
	}

	assert.Equal(t, []interface{}{"a", "b"}, StatementResult(results, 0))
	assert.Len(t, StatementResult(results, 1), 1)
	assert.Nil(t, StatementResult(results, 2))
	assert.Nil(t, StatementResult(results, 5))
}

func TestClassify(t *testing.T) {
	dup := classify(errors.New("Database index `guild_name` already contains 'Alpha'"))
	assert.ErrorIs(t, dup, ErrDuplicate)

	other := classify(errors.New("Parse error"))
	assert.ErrorIs(t, other, ErrQuery)
}
