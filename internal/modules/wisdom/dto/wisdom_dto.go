package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWisdomRequest struct {
	Title    string  `json:"title" binding:"required,max=200"`
	Content  string  `json:"content" binding:"required"`
	Category string  `json:"category" binding:"omitempty,oneof=networking career community other"`
	Tags     *string `json:"tags" binding:"omitempty,max=255"`
}

type UpdateWisdomRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty,oneof=networking career community other"`
	Tags     *string `json:"tags" binding:"omitempty,max=255"`
}

type WisdomResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	AuthorID  uuid.UUID `json:"author_id"`
	UpVotes   int       `json:"up_votes"`
	DownVotes int       `json:"down_votes"`
	Tags      *string   `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListWisdomQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=networking career community other"`
	Search   string `form:"search"`
}

type VoteRequest struct {
	Vote string `json:"vote" binding:"required,oneof=up down"`
}
