package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/pkg/logging"
)

// HistoryHandler exposes the analysis log.
type HistoryHandler struct {
	store  *history.Store
	logger *logging.Logger
}

func NewHistoryHandler(store *history.Store, logger *logging.Logger) *HistoryHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryHandler{store: store, logger: logger}
}

// List returns every entry, newest first.
// GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": h.store.All(r.Context()),
	})
}

// Remove deletes one entry.
// DELETE /api/history/{id}
func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("history remove failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear empties the log.
// DELETE /api/history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.logger.Error("history clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
