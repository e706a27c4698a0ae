package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is a practitioner listed in the directory. Doctors are created by
// seeding and are read-only from the patient-facing API.
type Doctor struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Address         *string         `gorm:"type:text" json:"address,omitempty"`
	SpecialtyID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"specialty_id"`
	CityID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"city_id"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	City      City      `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
