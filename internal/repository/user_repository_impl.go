package repository

import (
	"context"
	"errors"

	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Preload("Profile").Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
