package dto

import (
	"time"

	"github.com/google/uuid"
)

type StreakResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Streak int       `json:"streak"`
}

type AwardPointsRequest struct {
	ActionType string `json:"action_type" binding:"required,max=50"`
	Points     int    `json:"points" binding:"required"`
}

// AwardPointsBody carries just the amount when the action type comes from
// the route.
type AwardPointsBody struct {
	Points int `json:"points"`
}

type PointLogResponse struct {
	ActionType string    `json:"action_type"`
	Points     int       `json:"points"`
	Date       time.Time `json:"date"`
}

type PointsTotalResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Total  int64     `json:"total"`
}
