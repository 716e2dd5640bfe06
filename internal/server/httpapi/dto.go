package httpapi

import (
	"time"

	"github.com/dmitrijs2005/focussync/internal/model"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type syncRequest struct {
	Tasks  []model.TaskRecord  `json:"tasks"`
	Timers []model.TimerRecord `json:"timers"`
}

// userDTO is the public projection of an account; password material never
// leaves the server.
type userDTO struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastCheckIn   string `json:"lastCheckIn,omitempty"`
}

func toUserDTO(u *model.User) userDTO {
	dto := userDTO{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
	}
	if !u.LastCheckIn.IsZero() {
		dto.LastCheckIn = u.LastCheckIn.UTC().Format(time.RFC3339)
	}
	return dto
}

type authResponse struct {
	User    userDTO          `json:"user"`
	Tokens  *model.TokenPair `json:"tokens"`
	Message string           `json:"message"`
}

type syncResponse struct {
	Tasks        []model.TaskRecord  `json:"tasks"`
	Timers       []model.TimerRecord `json:"timers"`
	LastSyncedAt string              `json:"lastSyncedAt"`
	Message      string              `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
