package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/internal/services"
	"github.com/jwebster45206/quest-engine/pkg/event"
)

// ProcessEventsRequest carries either an inline event batch or the
// filename of an authored trigger set. Exactly one must be set.
type ProcessEventsRequest struct {
	TriggerSet string            `json:"trigger_set,omitempty"`
	Events     []event.GameEvent `json:"events,omitempty"`
}

type ProcessEventsResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	Reports   []event.Report `json:"reports"`
}

func (h *SessionHandler) handleProcessEvents(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ProcessEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TriggerSet == "" && len(req.Events) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, "Request must include trigger_set or events")
		return
	}
	if req.TriggerSet != "" && len(req.Events) > 0 {
		writeError(w, h.logger, http.StatusBadRequest, "Request must include trigger_set or events, not both")
		return
	}

	events := req.Events
	if req.TriggerSet != "" {
		ts, err := h.storage.GetTriggerSet(r.Context(), req.TriggerSet)
		if err != nil {
			h.logger.Warn("Trigger set not found", "trigger_set", req.TriggerSet, "error", err)
			writeError(w, h.logger, http.StatusNotFound, "Trigger set not found: "+req.TriggerSet)
			return
		}
		events = ts.Events
	}

	gs, catalog, ok := h.loadHydrated(w, r, id)
	if !ok {
		return
	}

	// The creature spec is optional context; player_level conditions read
	// it, everything else works without it.
	spec, err := h.storage.GetCreature(r.Context(), gs.CreatureID)
	if err != nil {
		h.logger.Warn("Creature spec unavailable for session", "session_id", id, "creature_id", gs.CreatureID)
		spec = nil
	}

	engine := event.NewEngine(h.logger).
		WithCatalog(catalog).
		WithTagStore(services.NewStateTagStore(gs)).
		WithAudioPlayer(services.NewLogAudioPlayer(h.logger)).
		WithSceneLoader(services.NewStateSceneLoader(gs, h.logger))
	if h.narration != nil {
		engine = engine.WithDialoguePlayer(services.NewQueueDialoguePlayer(h.narration, gs))
	}

	facts := services.NewStateFacts(gs, spec)
	reports := engine.ProcessEvents(r.Context(), events, facts, gs.Inventory)

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save gamestate", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	if err := json.NewEncoder(w).Encode(ProcessEventsResponse{
		SessionID: gs.ID,
		Reports:   reports,
	}); err != nil {
		h.logger.Error("Failed to encode events response", "error", err)
	}
}
