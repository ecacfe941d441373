package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConnectionRequest struct {
	ConnectedUserID string `json:"connected_user_id" binding:"required,uuid"`
}

type ConnectionResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	ConnectedUserID uuid.UUID `json:"connected_user_id"`
	Strength        int       `json:"connection_strength"`
	CreatedAt       time.Time `json:"created_at"`
}

type ConnectionListResponse struct {
	Data []ConnectionResponse `json:"data"`
}
