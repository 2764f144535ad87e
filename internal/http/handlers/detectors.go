package handlers

import (
	"net/http"

	"github.com/truthguard/truthguard/internal/detector"
)

// DetectorsHandler serves the static detector catalog.
type DetectorsHandler struct {
	registry *detector.Registry
}

func NewDetectorsHandler(registry *detector.Registry) *DetectorsHandler {
	if registry == nil {
		registry = detector.NewRegistry()
	}
	return &DetectorsHandler{registry: registry}
}

// List returns the catalog in declaration order.
// GET /api/detectors
func (h *DetectorsHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"detectors": h.registry.All(),
	})
}
