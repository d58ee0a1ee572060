package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forgo/guildhall/internal/model"
)

// GuildService defines the guild operations the handler needs
type GuildService interface {
	Create(ctx context.Context, req *model.CreateGuildRequest) (*model.Guild, error)
	Get(ctx context.Context, id string) (*model.Guild, error)
	List(ctx context.Context) ([]*model.Guild, error)
	Update(ctx context.Context, id string, req *model.UpdateGuildRequest) (*model.Guild, error)
	Delete(ctx context.Context, id string) error
}

// GuildHandler handles guild HTTP requests
type GuildHandler struct {
	svc GuildService
}

// NewGuildHandler creates a new guild handler
func NewGuildHandler(svc GuildService) *GuildHandler {
	return &GuildHandler{svc: svc}
}

// List handles GET /v1/guilds - list guilds with their members
func (h *GuildHandler) List(w http.ResponseWriter, r *http.Request) {
	guilds, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err, "list guilds")
		return
	}
	if guilds == nil {
		guilds = []*model.Guild{}
	}

	WriteData(w, http.StatusOK, guilds, nil)
}

// Create handles POST /v1/guilds - create a new guild
func (h *GuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGuildRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	guild, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, "create guild")
		return
	}

	WriteData(w, http.StatusCreated, guild, map[string]string{
		"self": "/v1/guilds/" + guild.ID,
	})
}

// Get handles GET /v1/guilds/{guildId} - get a guild with its members
func (h *GuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	guildID := r.PathValue("guildId")
	if guildID == "" {
		WriteError(w, model.NewBadRequestError("guild ID required"))
		return
	}

	guild, err := h.svc.Get(r.Context(), guildID)
	if err != nil {
		handleError(w, r, err, "get guild")
		return
	}

	WriteData(w, http.StatusOK, guild, nil)
}

// Update handles PATCH /v1/guilds/{guildId} - rename a guild
func (h *GuildHandler) Update(w http.ResponseWriter, r *http.Request) {
	guildID := r.PathValue("guildId")
	if guildID == "" {
		WriteError(w, model.NewBadRequestError("guild ID required"))
		return
	}

	var req model.UpdateGuildRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	guild, err := h.svc.Update(r.Context(), guildID, &req)
	if err != nil {
		handleError(w, r, err, "update guild")
		return
	}

	WriteData(w, http.StatusOK, guild, nil)
}

// Delete handles DELETE /v1/guilds/{guildId} - delete a guild.
// Members stay in the roster without a guild.
func (h *GuildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guildID := r.PathValue("guildId")
	if guildID == "" {
		WriteError(w, model.NewBadRequestError("guild ID required"))
		return
	}

	if err := h.svc.Delete(r.Context(), guildID); err != nil {
		handleError(w, r, err, "delete guild")
		return
	}

	WriteNoContent(w)
}

// handleError converts service errors to HTTP responses.
// Server-side failures are logged with the request path.
func handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("operation", operation),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, pd)
}
