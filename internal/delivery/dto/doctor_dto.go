package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type SearchDoctorsRequest struct {
	Query    string `json:"query" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=100"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address,omitempty"`
	SpecialtyID     uuid.UUID       `json:"specialtyId"`
	Specialty       string          `json:"specialty"`
	CityID          uuid.UUID       `json:"cityId"`
	City            string          `json:"city"`
	Region          string          `json:"region,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultationFee"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type WorkingHoursResponse struct {
	WorkStart           string `json:"workStart"`
	WorkEnd             string `json:"workEnd"`
	DefaultSlotDuration int    `json:"defaultSlotDuration"`
}

type DoctorDetailResponse struct {
	DoctorResponse
	WorkingHours *WorkingHoursResponse `json:"workingHours,omitempty"`
}

type CityResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Region string    `json:"region"`
}

type SpecialtyResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
