package dto

import commonDto "github.com/weavr-net/weavr-server/pkg/dto"

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8,max=72"`
	FirstName string  `json:"first_name" binding:"required,max=100"`
	LastName  string  `json:"last_name" binding:"required,max=100"`
	Location  *string `json:"location" binding:"omitempty,max=100"`
	Headline  *string `json:"headline" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Location  *string `json:"location" binding:"omitempty,max=100"`
	Headline  *string `json:"headline" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

type AttachPassionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ListUsersQuery struct {
	Page    string `form:"page"`
	Limit   string `form:"limit"`
	Passion string `form:"passion"`
}

type PaginatedUserResponse struct {
	Data []commonDto.UserResponse `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
