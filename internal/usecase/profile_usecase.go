package usecase

import (
	"context"
	"time"

	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/internal/service"
	"beedical/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = apperror.NotFound("profile not found")
	ErrCINTaken        = apperror.Conflict("this CIN is already used by another profile")
)

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*dto.ProfileResponse, error)
	UpsertMyProfile(ctx context.Context, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
}

type profileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	auditService service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.FindByUserID(ctx, db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find profile of user %s: %+v", user.ID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return converter.ProfileToResponse(profile), nil
}

// UpsertMyProfile creates the caller's profile or replaces its fields. The
// CIN, when given, must not belong to another profile.
func (u *profileUsecase) UpsertMyProfile(ctx context.Context, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	if !validSex(req.Sex) {
		return nil, ErrInvalidSex
	}
	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := u.profileRepo.FindByUserID(ctx, db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find profile of user %s: %+v", user.ID, err)
		return nil, err
	}

	if req.CIN != "" {
		holder, err := u.profileRepo.FindByCIN(ctx, db, req.CIN)
		if err != nil {
			u.log.Warnf("Failed to look up CIN: %+v", err)
			return nil, err
		}
		if holder != nil && (existing == nil || holder.ID != existing.ID) {
			return nil, ErrCINTaken
		}
	}

	profile := &entity.Profile{}
	var before *entity.Profile
	if existing != nil {
		snapshot := *existing
		before = &snapshot
		profile = existing
	}

	profile.UserID = &user.ID
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Email = req.Email
	profile.Sex = req.Sex
	profile.BirthDate = &birthDate
	profile.BirthPlace = req.BirthPlace
	profile.Phone = req.Phone
	profile.City = req.City
	profile.Address = req.Address
	profile.PostalCode = req.PostalCode
	profile.HealthInsurance = req.HealthInsurance
	profile.CIN = optionalString(req.CIN)
	profile.Profession = req.Profession
	profile.PhotoURL = optionalString(req.PhotoURL)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if existing == nil {
		err = u.profileRepo.Create(ctx, tx, profile)
	} else {
		err = u.profileRepo.Update(ctx, tx, profile)
	}
	if err != nil {
		if isDuplicateKeyError(err, "idx_profiles_cin") {
			return nil, ErrCINTaken
		}
		u.log.Warnf("Failed to save profile of user %s: %+v", user.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &user.ID, entity.AuditActionProfileUpdate, "profile", profile.ID.String(), before, profile); err != nil {
		u.log.Warnf("Failed to audit profile %s: %+v", profile.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit profile: %+v", err)
		return nil, err
	}

	return converter.ProfileToResponse(profile), nil
}
