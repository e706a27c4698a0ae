package repository

import (
	"context"

	"beedical/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.User, error)
}
