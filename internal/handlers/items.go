package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jwebster45206/quest-engine/internal/storage"
)

// ItemsHandler serves the read-only item catalog.
// Routes:
// GET /v1/items      - List all catalog items
// GET /v1/items/{id} - Read one item by numeric ID
type ItemsHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewItemsHandler(logger *slog.Logger, storage storage.Storage) *ItemsHandler {
	return &ItemsHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	catalog, err := h.storage.LoadCatalog(r.Context())
	if err != nil {
		h.logger.Error("Failed to load item catalog", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load item catalog")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/items"), "/")
	if path == "" {
		if err := json.NewEncoder(w).Encode(catalog.ListItems()); err != nil {
			h.logger.Error("Failed to encode items response", "error", err)
		}
		return
	}

	id, err := strconv.Atoi(path)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Item ID must be an integer")
		return
	}

	it := catalog.GetItemByID(id)
	if it == nil {
		writeError(w, h.logger, http.StatusNotFound, "Item not found")
		return
	}

	if err := json.NewEncoder(w).Encode(it); err != nil {
		h.logger.Error("Failed to encode item response", "error", err)
	}
}
