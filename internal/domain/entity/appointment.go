package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "En attente"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmé"
	AppointmentStatusCancelled AppointmentStatus = "Annulé"
)

// ParseAppointmentStatus accepts only the three known values
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch status := AppointmentStatus(s); status {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return status, true
	}
	return "", false
}

// Appointment links a patient profile to a doctor for one time range on one
// date. Only Status changes after creation.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID         `gorm:"type:uuid;not null;index" json:"profile_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	Date      time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	StartTime string            `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string            `gorm:"type:varchar(5);not null" json:"end_time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'En attente';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Profile Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// ConfirmedSlot is one busy interval of a doctor, as used by the browse flow
type ConfirmedSlot struct {
	DoctorID  uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
}
