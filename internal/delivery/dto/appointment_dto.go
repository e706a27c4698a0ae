package dto

import (
	"time"

	"beedical/internal/availability"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  string `json:"doctorId" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentDoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	City      string    `json:"city,omitempty"`
}

type AppointmentPatientResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

type AppointmentResponse struct {
	ID        uuid.UUID                   `json:"id"`
	ProfileID uuid.UUID                   `json:"profileId"`
	DoctorID  uuid.UUID                   `json:"doctorId"`
	Date      string                      `json:"date"`
	StartTime string                      `json:"startTime"`
	EndTime   string                      `json:"endTime"`
	Status    string                      `json:"status"`
	CreatedAt time.Time                   `json:"createdAt"`
	Doctor    *AppointmentDoctorResponse  `json:"doctor,omitempty"`
	Patient   *AppointmentPatientResponse `json:"patient,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type ConfirmedSlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConfirmedByDoctorResponse maps a doctor id to its confirmed intervals
type ConfirmedByDoctorResponse map[string][]ConfirmedSlotResponse

type AvailableSlotsResponse struct {
	DoctorID     uuid.UUID           `json:"doctorId"`
	Date         string              `json:"date"`
	SlotDuration int                 `json:"slotDuration"`
	Slots        []availability.Slot `json:"slots"`
}
