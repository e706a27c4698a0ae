package usecase

import (
	"context"
	"errors"

	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/delivery/http/middleware"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthUsecase bridges identity-provider accounts and local users.
// Credentials never reach this service.
type AuthUsecase interface {
	SyncUser(ctx context.Context) (*dto.SyncUserResponse, error)
	Logout(ctx context.Context) error
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	denyList    service.TokenDenyList
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	denyList service.TokenDenyList,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		denyList:    denyList,
	}
}

// SyncUser mirrors the caller's account locally on first login. The new
// user takes over an account-less profile registered under the same email
// (one created by a manager as a dependent), otherwise gets an empty one.
func (u *authUsecase) SyncUser(ctx context.Context) (*dto.SyncUserResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)
	name, _ := middleware.GetUserNameFromContext(ctx)

	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByExternalID(ctx, db, subject)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", subject, err)
		return nil, err
	}
	if user != nil {
		profile, err := u.profileRepo.FindByUserID(ctx, db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find profile of user %s: %+v", user.ID, err)
			return nil, err
		}
		if profile != nil {
			return syncResponse(user, profile, false), nil
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if user == nil {
		user = &entity.User{
			ExternalID: subject,
			Email:      email,
			FullName:   name,
		}
		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			if isDuplicateKeyError(err, "idx_users_external_id") {
				// a concurrent first request won the race
				tx.Rollback()
				return u.syncExisting(ctx, subject)
			}
			u.log.Warnf("Failed to create user %s: %+v", subject, err)
			return nil, err
		}
	}

	profile, err := u.claimOrCreateProfile(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit user sync: %+v", err)
		return nil, err
	}

	u.log.Infof("First login: user=%s, profile=%s", user.ID, profile.ID)
	return syncResponse(user, profile, true), nil
}

// Logout revokes the caller's access token until it expires
func (u *authUsecase) Logout(ctx context.Context) error {
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	expiresAt, _ := middleware.GetTokenExpiryFromContext(ctx)

	if err := u.denyList.Revoke(ctx, tokenID, expiresAt); err != nil {
		u.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return err
	}

	u.log.Infof("Token revoked: %s", tokenID)
	return nil
}

func (u *authUsecase) claimOrCreateProfile(ctx context.Context, tx *gorm.DB, user *entity.User) (*entity.Profile, error) {
	if user.Email != "" {
		profile, err := u.profileRepo.FindByEmail(ctx, tx, user.Email)
		if err != nil {
			u.log.Warnf("Failed to look up profile by email: %+v", err)
			return nil, err
		}
		if profile != nil && !profile.HasAccount() {
			profile.UserID = &user.ID
			if err := u.profileRepo.Update(ctx, tx, profile); err != nil {
				u.log.Warnf("Failed to link profile %s: %+v", profile.ID, err)
				return nil, err
			}
			u.log.Infof("Profile %s linked to user %s", profile.ID, user.ID)
			return profile, nil
		}
	}

	firstName, lastName := splitName(user.FullName)
	profile := &entity.Profile{
		UserID:    &user.ID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     user.Email,
		Sex:       entity.SexUnspecified,
	}
	if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to create profile for user %s: %+v", user.ID, err)
		return nil, err
	}
	return profile, nil
}

func (u *authUsecase) syncExisting(ctx context.Context, subject string) (*dto.SyncUserResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByExternalID(ctx, db, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user vanished after duplicate insert")
	}

	profile, err := u.profileRepo.FindByUserID(ctx, db, user.ID)
	if err != nil {
		return nil, err
	}
	return syncResponse(user, profile, false), nil
}

func syncResponse(user *entity.User, profile *entity.Profile, firstLogin bool) *dto.SyncUserResponse {
	return &dto.SyncUserResponse{
		User:       *converter.UserToResponse(user),
		Profile:    converter.ProfileToResponse(profile),
		FirstLogin: firstLogin,
	}
}
