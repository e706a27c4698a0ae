package repository

import (
	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountPreferenceRepository interface {
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AccountPreference, error)
	Upsert(db *gorm.DB, pref *entity.AccountPreference) error
}
