package repository

import (
	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DependentRepository interface {
	Create(db *gorm.DB, dependent *entity.Dependent) error
	// FindByProfileID returns the oldest dependent wrapping the profile, or
	// nil, nil when there is none.
	FindByProfileID(db *gorm.DB, profileID uuid.UUID) (*entity.Dependent, error)
}

type ManagementGrantRepository interface {
	Create(db *gorm.DB, grant *entity.ManagementGrant) error
	// FindByManagerAndDependent preloads Dependent.Profile. It returns nil, nil
	// when the pair has no grant.
	FindByManagerAndDependent(db *gorm.DB, managerID, dependentID uuid.UUID) (*entity.ManagementGrant, error)
	// FindByManagerID returns the manager's grants ordered by dependent
	// creation, each with Dependent.Profile preloaded.
	FindByManagerID(db *gorm.DB, managerID uuid.UUID) ([]entity.ManagementGrant, error)
	Delete(db *gorm.DB, managerID, dependentID uuid.UUID) (int64, error)
}
