package models

import "time"

type MissionType string

const (
	MissionTypeRandom  MissionType = "random"
	MissionTypeCreator MissionType = "creator"
)

type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar,omitempty"`
	Tokens          int        `json:"tokens"`
	Streak          int        `json:"streak"`
	LastMissionDate *time.Time `json:"lastMissionDate,omitempty"`
}

type Mission struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
	MissionType MissionType `json:"missionType,omitempty"`
}

type VisionParameterType string

const (
	VisionPassion    VisionParameterType = "passion"
	VisionMission    VisionParameterType = "mission"
	VisionProfession VisionParameterType = "profession"
	VisionVocation   VisionParameterType = "vocation"
)

type VisionParameter struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Type        VisionParameterType `json:"type"`
	Description string              `json:"description"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// VisionImage is the artifact derived from a user's four vision parameters.
// At most one exists per user; generating a new one replaces it.
type VisionImage struct {
	ImageURL  string    `json:"imageUrl"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
