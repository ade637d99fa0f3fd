package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/quest-engine/internal/storage"
)

// CreaturesHandler serves the read-only creature spec catalog.
// Routes:
// GET /v1/creatures      - List creature IDs
// GET /v1/creatures/{id} - Read one creature spec
type CreaturesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewCreaturesHandler(logger *slog.Logger, storage storage.Storage) *CreaturesHandler {
	return &CreaturesHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *CreaturesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/creatures"), "/")
	if path == "" {
		ids, err := h.storage.ListCreatures(r.Context())
		if err != nil {
			h.logger.Error("Failed to list creatures", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list creatures")
			return
		}
		if err := json.NewEncoder(w).Encode(ids); err != nil {
			h.logger.Error("Failed to encode creatures response", "error", err)
		}
		return
	}

	spec, err := h.storage.GetCreature(r.Context(), path)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "Creature not found: "+path)
		return
	}

	if err := json.NewEncoder(w).Encode(spec); err != nil {
		h.logger.Error("Failed to encode creature response", "error", err)
	}
}
