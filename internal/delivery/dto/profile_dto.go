package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpsertProfileRequest struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Sex             string `json:"sex" validate:"required"`
	BirthDate       string `json:"birthDate" validate:"required,isodate"`
	BirthPlace      string `json:"birthPlace" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"required,max=30"`
	City            string `json:"city" validate:"required,max=100"`
	Address         string `json:"address" validate:"omitempty"`
	PostalCode      string `json:"postalCode" validate:"omitempty,max=20"`
	HealthInsurance string `json:"healthInsurance" validate:"omitempty,max=100"`
	CIN             string `json:"cin" validate:"omitempty,max=50"`
	Profession      string `json:"profession" validate:"omitempty,max=100"`
	PhotoURL        string `json:"photoUrl" validate:"omitempty,url"`
}

// Response DTOs

type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Sex             string    `json:"sex"`
	BirthDate       string    `json:"birthDate,omitempty"`
	BirthPlace      string    `json:"birthPlace"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postalCode"`
	City            string    `json:"city"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	HealthInsurance string    `json:"healthInsurance"`
	CIN             string    `json:"cin,omitempty"`
	Profession      string    `json:"profession"`
	PhotoURL        string    `json:"photoUrl,omitempty"`
	HasAccount      bool      `json:"hasAccount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
