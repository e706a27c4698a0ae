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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDependentNotFound = apperror.NotFound("dependent not found")
	ErrDependentReadOnly = apperror.Forbidden("you are not allowed to modify this dependent's profile")
	ErrDependentIsSelf   = apperror.InvalidInput("you cannot add yourself as a dependent")
	ErrDependentExists   = apperror.Conflict("this dependent is already managed by you")
	ErrInvalidSex        = apperror.InvalidInput("invalid sex, accepted values are: Homme, Femme, Non spécifié")
)

// DependentUsecase manages the people a user acts for ("proches")
type DependentUsecase interface {
	AddDependent(ctx context.Context, req *dto.AddDependentRequest) (*dto.DependentResponse, error)
	ListDependents(ctx context.Context) (*dto.DependentListResponse, error)
	GetDependent(ctx context.Context, dependentID uuid.UUID) (*dto.DependentResponse, error)
	UpdateDependentProfile(ctx context.Context, dependentID uuid.UUID, req *dto.UpdateDependentRequest) (*dto.DependentResponse, error)
	RemoveDependent(ctx context.Context, dependentID uuid.UUID) error
}

type dependentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	dependentRepo repository.DependentRepository
	grantRepo     repository.ManagementGrantRepository
	auditService  service.AuditService
}

func NewDependentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	dependentRepo repository.DependentRepository,
	grantRepo repository.ManagementGrantRepository,
	auditService service.AuditService,
) DependentUsecase {
	return &dependentUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		dependentRepo: dependentRepo,
		grantRepo:     grantRepo,
		auditService:  auditService,
	}
}

// AddDependent links the profile registered under the given email, or
// creates one, and grants the caller legal-guardian rights over it. A
// profile that already belongs to an account cannot be modified by the
// manager.
func (u *dependentUsecase) AddDependent(ctx context.Context, req *dto.AddDependentRequest) (*dto.DependentResponse, error) {
	manager, err := currentUser(ctx, u.db.WithContext(ctx), u.userRepo)
	if err != nil {
		return nil, err
	}

	sex := req.Sex
	if sex == "" {
		sex = entity.SexUnspecified
	}
	if !validSex(sex) {
		return nil, ErrInvalidSex
	}
	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		birthDate = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByEmail(ctx, tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to look up profile by email: %+v", err)
		return nil, err
	}
	if profile != nil {
		// serializes concurrent adds of the same person
		profile, err = u.profileRepo.LockByID(ctx, tx, profile.ID)
		if err != nil {
			u.log.Warnf("Failed to lock profile: %+v", err)
			return nil, err
		}
	}
	if profile != nil && profile.UserID != nil && *profile.UserID == manager.ID {
		return nil, ErrDependentIsSelf
	}

	if profile == nil {
		profile = &entity.Profile{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Sex:        sex,
			BirthDate:  birthDate,
			BirthPlace: req.BirthPlace,
			Phone:      req.Phone,
			Address:    req.Address,
			PostalCode: req.PostalCode,
			City:       req.City,
		}
		if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create dependent profile: %+v", err)
			return nil, err
		}
	}
	accountExists := profile.HasAccount()

	dependent, err := u.dependentFor(tx, profile, accountExists)
	if err != nil {
		return nil, err
	}

	existing, err := u.grantRepo.FindByManagerAndDependent(tx, manager.ID, dependent.ID)
	if err != nil {
		u.log.Warnf("Failed to find grant %s/%s: %+v", manager.ID, dependent.ID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDependentExists
	}

	grant := &entity.ManagementGrant{
		ManagerID:             manager.ID,
		DependentID:           dependent.ID,
		Role:                  entity.DependentRoleLegalGuardian,
		CanModifyProfile:      !accountExists,
		CanManageAppointments: true,
		CanManageDocuments:    true,
	}
	if err := u.grantRepo.Create(tx, grant); err != nil {
		if isDuplicateKeyError(err, "idx_grants_manager_dependent") {
			return nil, ErrDependentExists
		}
		u.log.Warnf("Failed to create management grant: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &manager.ID, entity.AuditActionDependentAdd, "dependent", dependent.ID.String(), grant); err != nil {
		u.log.Warnf("Failed to audit dependent %s: %+v", dependent.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit dependent: %+v", err)
		return nil, err
	}

	u.log.Infof("Dependent added: id=%s, manager=%s, account_exists=%t", dependent.ID, manager.ID, accountExists)

	dependent.Profile = *profile
	grant.Dependent = *dependent
	response := converter.GrantToDependentResponse(grant)
	return &response, nil
}

// ListDependents returns the caller's dependents by creation order with
// rights re-derived from the current state of each profile
func (u *dependentUsecase) ListDependents(ctx context.Context) (*dto.DependentListResponse, error) {
	db := u.db.WithContext(ctx)
	manager, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	grants, err := u.grantRepo.FindByManagerID(db, manager.ID)
	if err != nil {
		u.log.Warnf("Failed to find grants of manager %s: %+v", manager.ID, err)
		return nil, err
	}

	return &dto.DependentListResponse{
		Dependents: converter.GrantsToDependentResponses(grants),
		Total:      len(grants),
	}, nil
}

func (u *dependentUsecase) GetDependent(ctx context.Context, dependentID uuid.UUID) (*dto.DependentResponse, error) {
	db := u.db.WithContext(ctx)
	manager, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	grant, err := u.findGrant(db, manager.ID, dependentID)
	if err != nil {
		return nil, err
	}

	response := converter.GrantToDependentResponse(grant)
	return &response, nil
}

// UpdateDependentProfile changes the dependent's profile fields present in
// req. The grant itself is never modified.
func (u *dependentUsecase) UpdateDependentProfile(ctx context.Context, dependentID uuid.UUID, req *dto.UpdateDependentRequest) (*dto.DependentResponse, error) {
	manager, err := currentUser(ctx, u.db.WithContext(ctx), u.userRepo)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	grant, err := u.findGrant(tx, manager.ID, dependentID)
	if err != nil {
		return nil, err
	}
	// the owner may have signed up since the grant was read
	profile, err := u.profileRepo.LockByID(ctx, tx, grant.Dependent.ProfileID)
	if err != nil {
		u.log.Warnf("Failed to lock profile of dependent %s: %+v", dependentID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDependentNotFound
	}
	if !grant.EffectiveRights(profile).ModifyProfile {
		return nil, ErrDependentReadOnly
	}

	before := *profile
	if err := applyDependentUpdate(profile, req); err != nil {
		return nil, err
	}

	if err := u.profileRepo.UpdateDetails(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update profile of dependent %s: %+v", dependentID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &manager.ID, entity.AuditActionDependentUpdate, "profile", profile.ID.String(), before, profile); err != nil {
		u.log.Warnf("Failed to audit dependent update %s: %+v", dependentID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit dependent update: %+v", err)
		return nil, err
	}

	grant.Dependent.Profile = *profile
	response := converter.GrantToDependentResponse(grant)
	return &response, nil
}

// RemoveDependent ends the caller's management of a dependent. The profile
// and the dependent record stay.
func (u *dependentUsecase) RemoveDependent(ctx context.Context, dependentID uuid.UUID) error {
	manager, err := currentUser(ctx, u.db.WithContext(ctx), u.userRepo)
	if err != nil {
		return err
	}

	grant, err := u.findGrant(u.db.WithContext(ctx), manager.ID, dependentID)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.grantRepo.Delete(tx, manager.ID, dependentID)
	if err != nil {
		u.log.Warnf("Failed to delete grant %s: %+v", grant.ID, err)
		return err
	}
	if affected == 0 {
		return ErrDependentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &manager.ID, entity.AuditActionDependentRemove, "management_grant", grant.ID.String(), grant); err != nil {
		u.log.Warnf("Failed to audit grant removal %s: %+v", grant.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit grant removal: %+v", err)
		return err
	}

	u.log.Infof("Dependent removed: id=%s, manager=%s", dependentID, manager.ID)
	return nil
}

func (u *dependentUsecase) findGrant(db *gorm.DB, managerID, dependentID uuid.UUID) (*entity.ManagementGrant, error) {
	grant, err := u.grantRepo.FindByManagerAndDependent(db, managerID, dependentID)
	if err != nil {
		u.log.Warnf("Failed to find grant %s/%s: %+v", managerID, dependentID, err)
		return nil, err
	}
	if grant == nil {
		return nil, ErrDependentNotFound
	}
	return grant, nil
}

// dependentFor reuses the dependent already wrapping the profile so that every
// manager of one person shares a single record
func (u *dependentUsecase) dependentFor(tx *gorm.DB, profile *entity.Profile, accountExists bool) (*entity.Dependent, error) {
	dependent, err := u.dependentRepo.FindByProfileID(tx, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to find dependent of profile %s: %+v", profile.ID, err)
		return nil, err
	}
	if dependent != nil {
		return dependent, nil
	}

	dependent = &entity.Dependent{
		ProfileID:     profile.ID,
		AccountExists: accountExists,
	}
	if err := u.dependentRepo.Create(tx, dependent); err != nil {
		u.log.Warnf("Failed to create dependent: %+v", err)
		return nil, err
	}
	return dependent, nil
}

func applyDependentUpdate(profile *entity.Profile, req *dto.UpdateDependentRequest) error {
	if req.Sex != nil {
		if !validSex(*req.Sex) {
			return ErrInvalidSex
		}
		profile.Sex = *req.Sex
	}
	if req.BirthDate != nil {
		parsed, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			return ErrInvalidDate
		}
		profile.BirthDate = &parsed
	}

	setIfPresent(&profile.FirstName, req.FirstName)
	setIfPresent(&profile.LastName, req.LastName)
	setIfPresent(&profile.BirthPlace, req.BirthPlace)
	setIfPresent(&profile.Phone, req.Phone)
	setIfPresent(&profile.Address, req.Address)
	setIfPresent(&profile.PostalCode, req.PostalCode)
	setIfPresent(&profile.City, req.City)
	return nil
}

func setIfPresent(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
