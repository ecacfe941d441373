package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGoalRequest struct {
	Description string `json:"description" binding:"required"`
	GoalType    string `json:"goal_type" binding:"omitempty,oneof=career mentorship collaboration other"`
}

type UpdateGoalRequest struct {
	Description *string `json:"description"`
	GoalType    *string `json:"goal_type" binding:"omitempty,oneof=career mentorship collaboration other"`
}

type GoalResponse struct {
	ID          uint      `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	GoalType    string    `json:"goal_type"`
	CreatedAt   time.Time `json:"created_at"`
}
