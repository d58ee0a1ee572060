package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/guildhall/internal/model"
)

// ============================================================================
// Mock GuildService
// ============================================================================

type mockGuildService struct {
	createFunc func(ctx context.Context, req *model.CreateGuildRequest) (*model.Guild, error)
	getFunc    func(ctx context.Context, id string) (*model.Guild, error)
	listFunc   func(ctx context.Context) ([]*model.Guild, error)
	updateFunc func(ctx context.Context, id string, req *model.UpdateGuildRequest) (*model.Guild, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockGuildService) Create(ctx context.Context, req *model.CreateGuildRequest) (*model.Guild, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockGuildService) Get(ctx context.Context, id string) (*model.Guild, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGuildService) List(ctx context.Context) ([]*model.Guild, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockGuildService) Update(ctx context.Context, id string, req *model.UpdateGuildRequest) (*model.Guild, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockGuildService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ============================================================================
// Mock PlayerService
// ============================================================================

type mockPlayerService struct {
	createFunc  func(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)
	getFunc     func(ctx context.Context, id string) (*model.Player, error)
	listFunc    func(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error)
	updateFunc  func(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error)
	deleteFunc  func(ctx context.Context, id string) error
	balanceFunc func(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error)
	resetFunc   func(ctx context.Context) ([]*model.Player, error)
}

func (m *mockPlayerService) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlayerService) Get(ctx context.Context, id string) (*model.Player, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlayerService) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockPlayerService) Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockPlayerService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlayerService) Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error) {
	if m.balanceFunc != nil {
		return m.balanceFunc(ctx, req)
	}
	return &model.BalanceResult{}, nil
}

func (m *mockPlayerService) Reset(ctx context.Context) ([]*model.Player, error) {
	if m.resetFunc != nil {
		return m.resetFunc(ctx)
	}
	return nil, nil
}

// ============================================================================
// Helpers
// ============================================================================

func newTestMux(guilds GuildService, players PlayerService) *http.ServeMux {
	gh := NewGuildHandler(guilds)
	ph := NewPlayerHandler(players)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/guilds", gh.List)
	mux.HandleFunc("POST /v1/guilds", gh.Create)
	mux.HandleFunc("GET /v1/guilds/{guildId}", gh.Get)
	mux.HandleFunc("PATCH /v1/guilds/{guildId}", gh.Update)
	mux.HandleFunc("DELETE /v1/guilds/{guildId}", gh.Delete)
	mux.HandleFunc("GET /v1/players", ph.List)
	mux.HandleFunc("POST /v1/players", ph.Create)
	mux.HandleFunc("POST /v1/players/balance", ph.Balance)
	mux.HandleFunc("POST /v1/players/reset", ph.Reset)
	mux.HandleFunc("GET /v1/players/{playerId}", ph.Get)
	mux.HandleFunc("PATCH /v1/players/{playerId}", ph.Update)
	mux.HandleFunc("DELETE /v1/players/{playerId}", ph.Delete)
	return mux
}

func serve(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	var pd model.ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&pd); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	return pd
}

func intPtr(v int) *int {
	return &v
}
