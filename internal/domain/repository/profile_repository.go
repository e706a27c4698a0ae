package repository

import (
	"context"

	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	Update(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	// UpdateDetails writes the personal details a manager may edit. It never
	// touches user_id, email or cin.
	UpdateDetails(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error)
	// LockByID reads the profile with SELECT ... FOR UPDATE
	LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Profile, error)
	FindByCIN(ctx context.Context, db *gorm.DB, cin string) (*entity.Profile, error)
}
