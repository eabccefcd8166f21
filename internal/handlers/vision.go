package handlers

import (
	"encoding/json"
	"net/http"

	"snapquest/internal/models"
	"snapquest/internal/session"
	"snapquest/internal/vision"
)

type VisionHandler struct {
	sessions *session.Manager
	vision   *vision.Service
}

func NewVisionHandler(sessions *session.Manager, svc *vision.Service) *VisionHandler {
	return &VisionHandler{sessions: sessions, vision: svc}
}

type visionResponse struct {
	Parameters []models.VisionParameter `json:"parameters"`
	Image      *models.VisionImage      `json:"image,omitempty"`
}

// Get returns the current user's saved vision and derived image, if any.
func (h *VisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	params, err := h.vision.Parameters(user.ID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	img, err := h.vision.Image(user.ID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, visionResponse{Parameters: params, Image: img})
}

// Save replaces the user's four vision parameters.
func (h *VisionHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	var p vision.Parameters
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	records, err := h.vision.SaveParameters(user, p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, records)
}

// GenerateImage derives the vision image from the submitted parameters.
func (h *VisionHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	var p vision.Parameters
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	img, err := h.vision.GenerateImage(user, p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}
