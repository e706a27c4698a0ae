package entity

import (
	"time"

	"github.com/google/uuid"
)

// Roles carried in identity-provider tokens
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User is the local mirror of an identity-provider account. Credentials live
// with the provider; ExternalID is its subject.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExternalID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"external_id"`
	Email      string    `gorm:"type:varchar(255);index" json:"email"`
	FullName   string    `gorm:"type:varchar(255)" json:"full_name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
