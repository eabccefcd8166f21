package handlers

import (
	"net/http"
	"time"

	"snapquest/internal/missions"
	"snapquest/internal/session"
)

type DashboardHandler struct {
	sessions *session.Manager
	missions *missions.Service
}

func NewDashboardHandler(sessions *session.Manager, svc *missions.Service) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, missions: svc}
}

type dashboardResponse struct {
	Tokens            int     `json:"tokens"`
	CurrentStreakDays int     `json:"current_streak_days"`
	LastMissionDate   *string `json:"last_mission_date,omitempty"`
	TotalMissions     int     `json:"total_missions"`
	CompletedMissions int     `json:"completed_missions"`
}

// Get aggregates the numbers that power the dashboard view.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	ms, err := h.missions.UserMissions()
	if err != nil {
		http.Error(w, "could not fetch missions", http.StatusInternalServerError)
		return
	}
	completed := 0
	for _, m := range ms {
		if m.Completed {
			completed++
		}
	}
	resp := dashboardResponse{
		Tokens:            user.Tokens,
		CurrentStreakDays: user.Streak,
		TotalMissions:     len(ms),
		CompletedMissions: completed,
	}
	if user.LastMissionDate != nil {
		s := user.LastMissionDate.Format(time.RFC3339)
		resp.LastMissionDate = &s
	}
	writeJSON(w, resp)
}
