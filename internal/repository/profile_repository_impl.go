package repository

import (
	"context"
	"errors"

	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

// Update writes every column, zero values included
func (r *profileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Omit("User").Save(profile).Error
}

func (r *profileRepository) UpdateDetails(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Model(profile).Omit("User").Updates(map[string]interface{}{
		"first_name":  profile.FirstName,
		"last_name":   profile.LastName,
		"sex":         profile.Sex,
		"birth_date":  profile.BirthDate,
		"birth_place": profile.BirthPlace,
		"phone":       profile.Phone,
		"address":     profile.Address,
		"postal_code": profile.PostalCode,
		"city":        profile.City,
	}).Error
}

func (r *profileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *profileRepository) LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *profileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, db, "user_id = ?", userID)
}

// FindByEmail matches case-insensitively and returns the oldest profile when
// several share the address.
func (r *profileRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at ASC").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByCIN(ctx context.Context, db *gorm.DB, cin string) (*entity.Profile, error) {
	return r.findOne(ctx, db, "cin = ?", cin)
}

func (r *profileRepository) findOne(ctx context.Context, db *gorm.DB, query string, arg interface{}) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.WithContext(ctx).Where(query, arg).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
