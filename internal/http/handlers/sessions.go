// Package handlers implements the REST surface of the triage service.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/internal/media"
	"github.com/truthguard/truthguard/internal/session"
	"github.com/truthguard/truthguard/pkg/logging"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

// SessionsHandler exposes the per-session analysis workflow.
type SessionsHandler struct {
	manager    *session.Manager
	controller *session.Controller
	registry   *detector.Registry
	history    *history.Store
	logger     *logging.Logger
}

func NewSessionsHandler(manager *session.Manager, controller *session.Controller, registry *detector.Registry, hist *history.Store, logger *logging.Logger) *SessionsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionsHandler{
		manager:    manager,
		controller: controller,
		registry:   registry,
		history:    hist,
		logger:     logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *SessionsHandler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := h.manager.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

// Create starts a new session.
// POST /api/sessions
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DetectorID detector.ID `json:"detector_id"`
	}
	if r.Body != nil {
		// An empty body selects the default detector.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.DetectorID == "" {
		req.DetectorID = detector.News
	}
	if _, ok := h.registry.Lookup(req.DetectorID); !ok {
		writeError(w, http.StatusBadRequest, "unknown detector")
		return
	}

	s := h.manager.Create(req.DetectorID)
	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// Get returns the session snapshot.
// GET /api/sessions/{id}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// SwitchDetector activates another detector, wiping transient state.
// POST /api/sessions/{id}/detector
func (h *SessionsHandler) SwitchDetector(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		DetectorID detector.ID `json:"detector_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.controller.SwitchDetector(s, req.DetectorID); err != nil {
		writeError(w, http.StatusBadRequest, "unknown detector")
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// SetText replaces the session's input text.
// POST /api/sessions/{id}/text
func (h *SessionsHandler) SetText(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.SetText(s, req.Text)
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// UploadMedia ingests one or more files from a multipart form. The
// response is immediate; items validate asynchronously.
// POST /api/sessions/{id}/media
func (h *SessionsHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	files := make([]media.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, media.MaxBytes+1))
		_ = f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file "+fh.Filename)
			return
		}
		files = append(files, media.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	ids := s.Media().IngestFiles(files)
	writeJSON(w, http.StatusAccepted, map[string]any{
		"item_ids": ids,
		"session":  s.Snapshot(),
	})
}

// AddMediaURL ingests a remote image or video by URL.
// POST /api/sessions/{id}/media/url
func (h *SessionsHandler) AddMediaURL(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.Media().IngestRemoteURL(r.Context(), req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "not a valid URL")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"item_id": id,
		"session": s.Snapshot(),
	})
}

// RemoveMedia deletes one media item.
// DELETE /api/sessions/{id}/media/{itemID}
func (h *SessionsHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	s.Media().Remove(chi.URLParam(r, "itemID"))
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// ClearMedia deletes all media items.
// DELETE /api/sessions/{id}/media
func (h *SessionsHandler) ClearMedia(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	s.Media().Clear()
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Analyze submits the session's content for classification.
// POST /api/sessions/{id}/analyze
func (h *SessionsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	snap, err := h.controller.Submit(r.Context(), s)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, snap)
	case errors.Is(err, session.ErrMediaPending), errors.Is(err, session.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// Reset clears input, media, result, and error.
// POST /api/sessions/{id}/reset
func (h *SessionsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	h.controller.Reset(s)
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Restore loads a past analysis back into the session.
// POST /api/sessions/{id}/restore/{entryID}
func (h *SessionsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	entry, found := h.history.Find(r.Context(), chi.URLParam(r, "entryID"))
	if !found {
		writeError(w, http.StatusNotFound, "history entry not found")
		return
	}
	h.controller.RestoreFromHistory(s, entry)
	writeJSON(w, http.StatusOK, s.Snapshot())
}
