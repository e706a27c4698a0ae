package usecase

import (
	"context"

	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const activityLimit = 50

type ActivityUsecase interface {
	ListMyActivity(ctx context.Context) (*dto.ActivityListResponse, error)
}

type activityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditLogRepo repository.AuditLogRepository
}

func NewActivityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditLogRepo repository.AuditLogRepository,
) ActivityUsecase {
	return &activityUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditLogRepo: auditLogRepo,
	}
}

// ListMyActivity returns the latest audit entries written by the caller
func (u *activityUsecase) ListMyActivity(ctx context.Context) (*dto.ActivityListResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.FindByUserID(db, user.ID, activityLimit)
	if err != nil {
		u.log.Warnf("Failed to find activity of user %s: %+v", user.ID, err)
		return nil, err
	}

	activities := converter.AuditLogsToActivities(logs)
	return &dto.ActivityListResponse{
		Activities: activities,
		Total:      len(activities),
	}, nil
}
