package repository

import (
	"errors"

	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountPreferenceRepository struct{}

func NewAccountPreferenceRepository() domainRepo.AccountPreferenceRepository {
	return &accountPreferenceRepository{}
}

func (r *accountPreferenceRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AccountPreference, error) {
	var pref entity.AccountPreference
	err := db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *accountPreferenceRepository) Upsert(db *gorm.DB, pref *entity.AccountPreference) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(pref).Error
}
