package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/truthguard/truthguard/internal/contacts"
	"github.com/truthguard/truthguard/pkg/logging"
)

// ContactsHandler manages emergency contacts and SOS links.
type ContactsHandler struct {
	store  *contacts.Store
	logger *logging.Logger
}

func NewContactsHandler(store *contacts.Store, logger *logging.Logger) *ContactsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactsHandler{store: store, logger: logger}
}

// List returns the stored contacts.
// GET /api/contacts
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": h.store.All(r.Context()),
	})
}

// Add stores a new contact.
// POST /api/contacts
func (h *ContactsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	contact, err := h.store.Add(r.Context(), req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, contacts.ErrInvalidContact) {
			writeError(w, http.StatusBadRequest, "name and phone are required")
			return
		}
		h.logger.Error("contact add failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store contact")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// Delete removes a contact.
// DELETE /api/contacts/{id}
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("contact delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pointGeo is a one-shot geolocator for caller-supplied coordinates.
type pointGeo struct {
	lat, lng float64
}

func (g pointGeo) Current(context.Context) (float64, float64, error) {
	return g.lat, g.lng, nil
}

// ShareLocation builds the SOS deep link for a contact from the
// caller's reported position.
// POST /api/contacts/{id}/share-location
func (h *ContactsHandler) ShareLocation(w http.ResponseWriter, r *http.Request) {
	contact, found := h.store.Find(r.Context(), chi.URLParam(r, "id"))
	if !found {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}

	var req struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lat == nil || req.Lng == nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	link, err := contacts.ShareLocationLink(r.Context(), pointGeo{lat: *req.Lat, lng: *req.Lng}, contact)
	if err != nil {
		h.logger.Error("share location failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build location link")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}
