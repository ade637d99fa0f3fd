package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/internal/services/queue"
	"github.com/jwebster45206/quest-engine/internal/storage"
	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

// SessionHandler handles play sessions and their subresources.
// Routes:
// POST   /v1/sessions                 - Create a session for a creature
// GET    /v1/sessions/{id}            - Read session state
// DELETE /v1/sessions/{id}            - Delete a session
// POST   /v1/sessions/{id}/events     - Process an event batch or trigger set
// GET    /v1/sessions/{id}/inventory  - Read the session inventory
// POST   /v1/sessions/{id}/inventory  - Add, remove, or use items
// GET    /v1/sessions/{id}/narration  - Drain queued narration
type SessionHandler struct {
	storage   storage.Storage
	narration *queue.NarrationQueue // nil disables play_narration effects
	logger    *slog.Logger
}

func NewSessionHandler(logger *slog.Logger, storage storage.Storage, narration *queue.NarrationQueue) *SessionHandler {
	return &SessionHandler{
		storage:   storage,
		narration: narration,
		logger:    logger,
	}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")

	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	sessionID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, sessionID)
		case http.MethodDelete:
			h.handleDelete(w, r, sessionID)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	switch parts[1] {
	case "events":
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleProcessEvents(w, r, sessionID)
	case "inventory":
		switch r.Method {
		case http.MethodGet:
			h.handleInventoryRead(w, r, sessionID)
		case http.MethodPost:
			h.handleInventoryAction(w, r, sessionID)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
		}
	case "narration":
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		h.handleNarration(w, r, sessionID)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown session subresource: "+parts[1])
	}
}

type CreateSessionRequest struct {
	CreatureID string `json:"creature_id"`
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CreatureID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "creature_id is required")
		return
	}

	spec, err := h.storage.GetCreature(r.Context(), req.CreatureID)
	if err != nil {
		h.logger.Warn("Creature not found", "creature_id", req.CreatureID, "error", err)
		writeError(w, h.logger, http.StatusNotFound, "Creature not found: "+req.CreatureID)
		return
	}

	catalog, err := h.storage.LoadCatalog(r.Context())
	if err != nil {
		h.logger.Error("Failed to load item catalog", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load item catalog")
		return
	}

	c, err := creature.New(spec)
	if err != nil {
		h.logger.Error("Failed to build creature", "creature_id", spec.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to build creature")
		return
	}

	// Starting items are a best-effort grant; overflow is logged, not fatal
	for _, name := range c.GrantStartingItems(catalog) {
		h.logger.Warn("Starting item not fully granted", "item", name, "creature_id", spec.ID)
	}

	gs := state.NewGameState(spec.ID, c.Inventory.Size())
	gs.Inventory = c.Inventory
	gs.HP = c.MaxHP()

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save gamestate", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("Session created", "session_id", gs.ID, "creature_id", spec.ID)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(gs); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load gamestate", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if gs == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	if err := json.NewEncoder(w).Encode(gs); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete gamestate", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	// Queued narration goes with the session
	if h.narration != nil {
		if err := h.narration.Clear(r.Context(), id); err != nil {
			h.logger.Warn("Failed to clear narration queue", "session_id", id, "error", err)
		}
	}

	h.logger.Info("Session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}
