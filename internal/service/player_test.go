package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/guildhall/internal/model"
)

func TestPlayerService_Create_Success(t *testing.T) {
	t.Parallel()

	var stored *model.Player
	players := &mockPlayerRepo{
		createFunc: func(ctx context.Context, player *model.Player) error {
			stored = player
			player.ID = "player:1"
			return nil
		},
	}
	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: players, GuildRepo: &mockGuildRepo{}})

	player, err := svc.Create(context.Background(), &model.CreatePlayerRequest{
		Name:       " Aria ",
		Class:      model.ClassCleric,
		Experience: intPtr(70),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.ID != "player:1" || stored.Name != "Aria" || stored.Experience != 70 {
		t.Errorf("unexpected player: %+v", stored)
	}
}

func TestPlayerService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: &mockPlayerRepo{}, GuildRepo: &mockGuildRepo{}})

	tests := []struct {
		name  string
		req   model.CreatePlayerRequest
		field string
	}{
		{"missing name", model.CreatePlayerRequest{Class: model.ClassMage, Experience: intPtr(1)}, "name"},
		{"unknown class", model.CreatePlayerRequest{Name: "x", Class: "BARD", Experience: intPtr(1)}, "class"},
		{"missing experience", model.CreatePlayerRequest{Name: "x", Class: model.ClassMage}, "experience"},
		{"negative experience", model.CreatePlayerRequest{Name: "x", Class: model.ClassMage, Experience: intPtr(-1)}, "experience"},
		{"experience over 100", model.CreatePlayerRequest{Name: "x", Class: model.ClassMage, Experience: intPtr(101)}, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Fields[0].Field != tt.field {
				t.Errorf("expected %s error, got %+v", tt.field, vErr.Fields)
			}
		})
	}
}

func TestPlayerService_Create_NameExists(t *testing.T) {
	t.Parallel()

	players := &mockPlayerRepo{
		getByNameFunc: func(ctx context.Context, name string) (*model.Player, error) {
			return &model.Player{ID: "player:9", Name: name}, nil
		},
	}
	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: players, GuildRepo: &mockGuildRepo{}})

	_, err := svc.Create(context.Background(), &model.CreatePlayerRequest{Name: "Aria", Class: model.ClassMage, Experience: intPtr(5)})
	if !errors.Is(err, ErrPlayerNameExists) {
		t.Errorf("expected ErrPlayerNameExists, got %v", err)
	}
}

func TestPlayerService_Create_UnknownGuild(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: &mockPlayerRepo{}, GuildRepo: &mockGuildRepo{}})

	_, err := svc.Create(context.Background(), &model.CreatePlayerRequest{
		Name: "Aria", Class: model.ClassMage, Experience: intPtr(5), GuildID: "guild:ghost",
	})
	if !errors.Is(err, ErrGuildNotFound) {
		t.Errorf("expected ErrGuildNotFound, got %v", err)
	}
}

func TestPlayerService_Update_PartialFields(t *testing.T) {
	t.Parallel()

	var stored *model.Player
	players := &mockPlayerRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Player, error) {
			return &model.Player{ID: id, Name: "Aria", Class: model.ClassMage, Experience: 10, GuildID: "guild:1"}, nil
		},
		updateFunc: func(ctx context.Context, player *model.Player) error {
			stored = player
			return nil
		},
	}
	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: players, GuildRepo: &mockGuildRepo{}})

	_, err := svc.Update(context.Background(), "player:1", &model.UpdatePlayerRequest{
		Experience: intPtr(80),
		GuildID:    strPtr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Aria" || stored.Class != model.ClassMage {
		t.Errorf("expected untouched fields preserved, got %+v", stored)
	}
	if stored.Experience != 80 || stored.GuildID != "" {
		t.Errorf("expected experience and guild updated, got %+v", stored)
	}
}

func TestPlayerService_Update_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: &mockPlayerRepo{}, GuildRepo: &mockGuildRepo{}})

	_, err := svc.Update(context.Background(), "player:missing", &model.UpdatePlayerRequest{Experience: intPtr(1)})
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayerService_List_PassesFilter(t *testing.T) {
	t.Parallel()

	var got model.PlayerFilter
	players := &mockPlayerRepo{
		listFunc: func(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
			got = filter
			return nil, nil
		},
	}
	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: players, GuildRepo: &mockGuildRepo{}})

	filter := model.PlayerFilter{Name: "ar", Class: model.ClassArcher, MinExperience: intPtr(5)}
	if _, err := svc.List(context.Background(), filter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "ar" || got.Class != model.ClassArcher || *got.MinExperience != 5 {
		t.Errorf("filter not passed through: %+v", got)
	}
}

func TestPlayerService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(PlayerServiceConfig{PlayerRepo: &mockPlayerRepo{}, GuildRepo: &mockGuildRepo{}})

	if err := svc.Delete(context.Background(), "player:missing"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}
