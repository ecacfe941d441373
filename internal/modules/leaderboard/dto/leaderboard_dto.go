package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeaderboardRequest struct {
	Name      string     `json:"name" binding:"required,max=100"`
	Criteria  string     `json:"criteria" binding:"required,max=100"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type LeaderboardResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Criteria  string          `json:"criteria"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Entries   []EntryResponse `json:"entries,omitempty"`
}

type EntryResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Score  int       `json:"score"`
	Rank   int       `json:"rank"`
}

type UserRankResponse struct {
	LeaderboardID uuid.UUID `json:"leaderboard_id"`
	UserID        uuid.UUID `json:"user_id"`
	Score         int       `json:"score"`
	Rank          int       `json:"rank"`
}
