package entity

import (
	"time"

	"github.com/google/uuid"
)

// City is a reference city with its administrative region
type City struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Region    string    `gorm:"type:varchar(150);not null" json:"region"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (City) TableName() string {
	return "cities"
}
