package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"snapquest/internal/missions"
	"snapquest/internal/models"
)

type MissionHandler struct {
	missions *missions.Service
}

func NewMissionHandler(svc *missions.Service) *MissionHandler {
	return &MissionHandler{missions: svc}
}

type generateRequest struct {
	ImageURL    string             `json:"imageUrl"`
	MissionType models.MissionType `json:"missionType"`
}

// Generate creates a mission from an uploaded image. Works without a
// session; a logged-in user pays one token.
func (h *MissionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	mission, err := h.missions.Generate(r.Context(), req.ImageURL, req.MissionType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(mission)
}

// Complete marks a mission done and returns the user with the updated
// streak and completion date.
func (h *MissionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	missionID := chi.URLParam(r, "id")
	user, err := h.missions.Complete(missionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, user)
}

func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.missions.UserMissions()
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if out == nil {
		out = []models.Mission{}
	}
	writeJSON(w, out)
}

func (h *MissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	mission, ok := h.missions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "mission not found", http.StatusNotFound)
		return
	}
	writeJSON(w, mission)
}

// Examples serves the showcase missions rendered before a user has any of
// their own.
func (h *MissionHandler) Examples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.missions.Examples())
}
