package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateIntroductionRequest struct {
	IntroducedUserID string  `json:"introduced_user_id" binding:"required,uuid"`
	TargetUserID     string  `json:"target_user_id" binding:"required,uuid"`
	Message          *string `json:"message"`
}

type UpdateIntroductionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected"`
}

type IntroductionResponse struct {
	ID               uuid.UUID `json:"id"`
	IntroducerID     uuid.UUID `json:"introducer_id"`
	IntroducedUserID uuid.UUID `json:"introduced_user_id"`
	TargetUserID     uuid.UUID `json:"target_user_id"`
	Message          *string   `json:"message,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
