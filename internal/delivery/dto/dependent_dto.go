package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddDependentRequest struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Sex        string `json:"sex" validate:"omitempty"`
	BirthDate  string `json:"birthDate" validate:"omitempty,isodate"`
	BirthPlace string `json:"birthPlace" validate:"omitempty,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Address    string `json:"address" validate:"omitempty"`
	PostalCode string `json:"postalCode" validate:"omitempty,max=20"`
	City       string `json:"city" validate:"omitempty,max=100"`
}

// UpdateDependentRequest only touches the fields that are present
type UpdateDependentRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Sex        *string `json:"sex" validate:"omitempty"`
	BirthDate  *string `json:"birthDate" validate:"omitempty,isodate"`
	BirthPlace *string `json:"birthPlace" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Address    *string `json:"address" validate:"omitempty"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=20"`
	City       *string `json:"city" validate:"omitempty,max=100"`
}

// Response DTOs

type RightsResponse struct {
	CanModifyProfile      bool `json:"canModifyProfile"`
	CanManageAppointments bool `json:"canManageAppointments"`
	CanManageDocuments    bool `json:"canManageDocuments"`
}

type DependentResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountExists bool            `json:"accountExists"`
	Role          string          `json:"role"`
	Rights        RightsResponse  `json:"rights"`
	Profile       ProfileResponse `json:"profile"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type DependentListResponse struct {
	Dependents []DependentResponse `json:"dependents"`
	Total      int                 `json:"total"`
}
