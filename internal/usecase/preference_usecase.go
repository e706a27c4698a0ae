package usecase

import (
	"context"

	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PreferenceUsecase interface {
	GetPreferences(ctx context.Context) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

type preferenceUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	preferenceRepo repository.AccountPreferenceRepository
	auditService   service.AuditService
}

func NewPreferenceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	preferenceRepo repository.AccountPreferenceRepository,
	auditService service.AuditService,
) PreferenceUsecase {
	return &preferenceUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		preferenceRepo: preferenceRepo,
		auditService:   auditService,
	}
}

// GetPreferences returns the stored preferences or the defaults
func (u *preferenceUsecase) GetPreferences(ctx context.Context) (*dto.PreferencesResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	pref, err := u.preferenceRepo.FindByUserID(db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find preferences of user %s: %+v", user.ID, err)
		return nil, err
	}
	if pref == nil {
		pref = entity.DefaultAccountPreference(user.ID)
	}

	return converter.PreferenceToResponse(pref), nil
}

func (u *preferenceUsecase) UpdatePreferences(ctx context.Context, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	current, err := u.preferenceRepo.FindByUserID(db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find preferences of user %s: %+v", user.ID, err)
		return nil, err
	}
	pref := entity.DefaultAccountPreference(user.ID)
	converter.ApplyPreferenceRequest(pref, req)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.preferenceRepo.Upsert(tx, pref); err != nil {
		u.log.Warnf("Failed to save preferences of user %s: %+v", user.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &user.ID, entity.AuditActionPreferenceUpdate, "account_preference", user.ID.String(), current, pref); err != nil {
		u.log.Warnf("Failed to audit preferences of user %s: %+v", user.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit preferences: %+v", err)
		return nil, err
	}

	return converter.PreferenceToResponse(pref), nil
}
