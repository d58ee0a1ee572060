package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/forgo/guildhall/internal/model"
)

// PlayerService defines the player and balancing operations the handler needs
type PlayerService interface {
	Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)
	Get(ctx context.Context, id string) (*model.Player, error)
	List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error)
	Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error)
	Delete(ctx context.Context, id string) error
	Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResult, error)
	Reset(ctx context.Context) ([]*model.Player, error)
}

// PlayerHandler handles player HTTP requests
type PlayerHandler struct {
	svc PlayerService
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(svc PlayerService) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

// List handles GET /v1/players - list players.
// Query: name (substring, case-insensitive), class, min_experience, max_experience
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, pd := parsePlayerFilter(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	players, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, "list players")
		return
	}
	if players == nil {
		players = []*model.Player{}
	}

	WriteData(w, http.StatusOK, players, nil)
}

// Create handles POST /v1/players - create a player
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePlayerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	player, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, "create player")
		return
	}

	WriteData(w, http.StatusCreated, player, map[string]string{
		"self": "/v1/players/" + player.ID,
	})
}

// Get handles GET /v1/players/{playerId}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	player, err := h.svc.Get(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err, "get player")
		return
	}

	WriteData(w, http.StatusOK, player, nil)
}

// Update handles PATCH /v1/players/{playerId}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	var req model.UpdatePlayerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	player, err := h.svc.Update(r.Context(), playerID, &req)
	if err != nil {
		handleError(w, r, err, "update player")
		return
	}

	WriteData(w, http.StatusOK, player, nil)
}

// Delete handles DELETE /v1/players/{playerId}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	if err := h.svc.Delete(r.Context(), playerID); err != nil {
		handleError(w, r, err, "delete player")
		return
	}

	WriteNoContent(w)
}

// Balance handles POST /v1/players/balance - assign unassigned players to guilds
func (h *PlayerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req model.BalanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.Balance(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, "balance players")
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Reset handles POST /v1/players/reset - remove every player from its guild
func (h *PlayerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.Reset(r.Context())
	if err != nil {
		handleError(w, r, err, "reset players")
		return
	}
	if players == nil {
		players = []*model.Player{}
	}

	WriteData(w, http.StatusOK, players, nil)
}

func parsePlayerFilter(r *http.Request) (model.PlayerFilter, *model.ProblemDetails) {
	q := r.URL.Query()
	filter := model.PlayerFilter{
		Name: strings.TrimSpace(q.Get("name")),
	}

	if class := q.Get("class"); class != "" {
		filter.Class = model.PlayerClass(strings.ToUpper(class))
		if !filter.Class.IsValid() {
			return filter, model.NewBadRequestError("class must be WARRIOR, MAGE, CLERIC, or ARCHER")
		}
	}

	var err error
	if filter.MinExperience, err = intParam(q.Get("min_experience")); err != nil {
		return filter, model.NewBadRequestError("min_experience must be an integer")
	}
	if filter.MaxExperience, err = intParam(q.Get("max_experience")); err != nil {
		return filter, model.NewBadRequestError("max_experience must be an integer")
	}
	return filter, nil
}

func intParam(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
