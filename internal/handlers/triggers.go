package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/quest-engine/internal/storage"
)

// TriggersHandler serves the authored trigger set content.
// Routes:
// GET /v1/triggers            - Map of trigger set ID to filename
// GET /v1/triggers/{filename} - Read one trigger set
type TriggersHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewTriggersHandler(logger *slog.Logger, storage storage.Storage) *TriggersHandler {
	return &TriggersHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *TriggersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/triggers"), "/")
	if path == "" {
		sets, err := h.storage.ListTriggerSets(r.Context())
		if err != nil {
			h.logger.Error("Failed to list trigger sets", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list trigger sets")
			return
		}
		if err := json.NewEncoder(w).Encode(sets); err != nil {
			h.logger.Error("Failed to encode trigger sets response", "error", err)
		}
		return
	}

	ts, err := h.storage.GetTriggerSet(r.Context(), path)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "Trigger set not found: "+path)
		return
	}

	if err := json.NewEncoder(w).Encode(ts); err != nil {
		h.logger.Error("Failed to encode trigger set response", "error", err)
	}
}
