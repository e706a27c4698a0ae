package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SyncUserResponse struct {
	User       UserResponse     `json:"user"`
	Profile    *ProfileResponse `json:"profile,omitempty"`
	FirstLogin bool             `json:"firstLogin"`
}
