package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type NarrationResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Dialogues []string  `json:"dialogues"`
}

// handleNarration drains the session's queued narration in FIFO order.
// With ?peek=N the first N entries are returned without draining.
func (h *SessionHandler) handleNarration(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if h.narration == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "Narration queue is not configured")
		return
	}

	var dialogues []string
	var err error
	if peek := r.URL.Query().Get("peek"); peek != "" {
		limit, perr := strconv.Atoi(peek)
		if perr != nil || limit <= 0 {
			writeError(w, h.logger, http.StatusBadRequest, "peek must be a positive integer")
			return
		}
		dialogues, err = h.narration.Peek(r.Context(), id, limit)
	} else {
		dialogues, err = h.narration.Dequeue(r.Context(), id)
	}
	if err != nil {
		h.logger.Error("Failed to read narration queue", "session_id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to read narration queue")
		return
	}

	if dialogues == nil {
		dialogues = []string{}
	}
	if err := json.NewEncoder(w).Encode(NarrationResponse{
		SessionID: id,
		Dialogues: dialogues,
	}); err != nil {
		h.logger.Error("Failed to encode narration response", "error", err)
	}
}
