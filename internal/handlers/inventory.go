package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/inventory"
	"github.com/jwebster45206/quest-engine/pkg/item"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// InventoryActionRequest is the body for POST inventory actions.
// Action is one of: add, remove, use, clear.
type InventoryActionRequest struct {
	Action string `json:"action"`
	ItemID int    `json:"item_id,omitempty"`
	Count  int    `json:"count,omitempty"`
}

type InventoryActionResponse struct {
	Action    string               `json:"action"`
	Requested int                  `json:"requested,omitempty"`
	Actual    int                  `json:"actual,omitempty"`
	Used      bool                 `json:"used,omitempty"`
	HP        int                  `json:"hp,omitempty"`
	Inventory *inventory.Inventory `json:"inventory"`
}

func (h *SessionHandler) handleInventoryRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, _, ok := h.loadHydrated(w, r, id)
	if !ok {
		return
	}
	if err := json.NewEncoder(w).Encode(gs.Inventory); err != nil {
		h.logger.Error("Failed to encode inventory response", "error", err)
	}
}

func (h *SessionHandler) handleInventoryAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req InventoryActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	gs, catalog, ok := h.loadHydrated(w, r, id)
	if !ok {
		return
	}

	resp := InventoryActionResponse{Action: req.Action}
	action := strings.ToLower(strings.TrimSpace(req.Action))

	switch action {
	case "add", "remove", "use":
		it := catalog.GetItemByID(req.ItemID)
		if it == nil {
			writeError(w, h.logger, http.StatusBadRequest, "Unknown item ID")
			return
		}

		switch action {
		case "add":
			if req.Count <= 0 {
				writeError(w, h.logger, http.StatusBadRequest, "count must be a positive integer")
				return
			}
			resp.Requested = req.Count
			resp.Actual = gs.Inventory.AddItem(it, req.Count)
		case "remove":
			if req.Count <= 0 {
				writeError(w, h.logger, http.StatusBadRequest, "count must be a positive integer")
				return
			}
			resp.Requested = req.Count
			resp.Actual = gs.Inventory.RemoveItem(it, req.Count)
		case "use":
			c, err := h.sessionCreature(r, gs)
			if err != nil {
				h.logger.Error("Failed to build creature for session", "session_id", id, "error", err)
				writeError(w, h.logger, http.StatusInternalServerError, "Failed to resolve session creature")
				return
			}
			resp.Used = gs.Inventory.UseItem(it, c)
			gs.HP = c.HP()
			resp.HP = gs.HP
		}
	case "clear":
		gs.Inventory.Clear()
	default:
		writeError(w, h.logger, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save gamestate", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	resp.Inventory = gs.Inventory
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode inventory response", "error", err)
	}
}

// loadHydrated loads a session and resolves its inventory against the
// catalog. On failure the error response has already been written.
func (h *SessionHandler) loadHydrated(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*state.GameState, item.Catalog, bool) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load gamestate", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return nil, nil, false
	}
	if gs == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return nil, nil, false
	}

	catalog, err := h.storage.LoadCatalog(r.Context())
	if err != nil {
		h.logger.Error("Failed to load item catalog", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load item catalog")
		return nil, nil, false
	}
	if err := gs.Inventory.Hydrate(catalog); err != nil {
		h.logger.Error("Failed to hydrate inventory", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Session inventory references unknown items")
		return nil, nil, false
	}
	return gs, catalog, true
}

// sessionCreature rebuilds the runtime creature for a session, carrying
// the session's persisted HP so use effects heal from the right baseline.
func (h *SessionHandler) sessionCreature(r *http.Request, gs *state.GameState) (*creature.Creature, error) {
	spec, err := h.storage.GetCreature(r.Context(), gs.CreatureID)
	if err != nil {
		return nil, err
	}
	runtime := *spec
	if gs.HP > 0 {
		runtime.HP = gs.HP
	}
	return creature.New(&runtime)
}
