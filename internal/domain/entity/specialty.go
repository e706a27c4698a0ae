package entity

import (
	"time"

	"github.com/google/uuid"
)

// Specialty is a medical specialty a doctor practises
type Specialty struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Specialty) TableName() string {
	return "specialties"
}
