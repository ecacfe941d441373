package dto

import (
	"github.com/google/uuid"

	commonDto "github.com/weavr-net/weavr-server/pkg/dto"
)

type ProximityResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	OtherUserID uuid.UUID `json:"other_user_id"`
	Proximity   int       `json:"proximity"`
}

type StrengthResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	OtherUserID uuid.UUID `json:"other_user_id"`
	Strength    int       `json:"strength"`
}

type SuggestionsResponse struct {
	Data []commonDto.UserResponse `json:"data"`
}

type SuggestionsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}
