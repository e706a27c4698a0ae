package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sex values accepted on a profile
const (
	SexMale        = "Homme"
	SexFemale      = "Femme"
	SexUnspecified = "Non spécifié"
)

// Profile is a person's demographic and contact record. It is owned either by
// a User, by one or more Dependent wrappers, or both.
type Profile struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	FirstName       string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Sex             string     `gorm:"type:varchar(20);not null" json:"sex"`
	BirthDate       *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	BirthPlace      string     `gorm:"type:varchar(100)" json:"birth_place"`
	Address         string     `gorm:"type:text" json:"address"`
	PostalCode      string     `gorm:"type:varchar(20)" json:"postal_code"`
	City            string     `gorm:"type:varchar(100)" json:"city"`
	Phone           string     `gorm:"type:varchar(30)" json:"phone"`
	Email           string     `gorm:"type:varchar(255);index" json:"email"`
	HealthInsurance string     `gorm:"type:varchar(100)" json:"health_insurance"`
	CIN             *string    `gorm:"column:cin;type:varchar(50);uniqueIndex" json:"cin,omitempty"`
	Profession      string     `gorm:"type:varchar(100)" json:"profession"`
	PhotoURL        *string    `gorm:"type:text" json:"photo_url,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// HasAccount reports whether the person signed up on their own
func (p *Profile) HasAccount() bool {
	return p.UserID != nil
}

func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
