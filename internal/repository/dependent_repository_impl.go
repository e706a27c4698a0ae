package repository

import (
	"errors"

	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dependentRepository struct{}

func NewDependentRepository() domainRepo.DependentRepository {
	return &dependentRepository{}
}

func (r *dependentRepository) Create(db *gorm.DB, dependent *entity.Dependent) error {
	return db.Omit("Profile", "Grants").Create(dependent).Error
}

func (r *dependentRepository) FindByProfileID(db *gorm.DB, profileID uuid.UUID) (*entity.Dependent, error) {
	var dependent entity.Dependent
	err := db.Where("profile_id = ?", profileID).Order("created_at ASC").First(&dependent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dependent, nil
}

type managementGrantRepository struct{}

func NewManagementGrantRepository() domainRepo.ManagementGrantRepository {
	return &managementGrantRepository{}
}

func (r *managementGrantRepository) Create(db *gorm.DB, grant *entity.ManagementGrant) error {
	return db.Omit("Manager", "Dependent").Create(grant).Error
}

func (r *managementGrantRepository) FindByManagerAndDependent(db *gorm.DB, managerID, dependentID uuid.UUID) (*entity.ManagementGrant, error) {
	var grant entity.ManagementGrant
	err := db.Preload("Dependent.Profile").
		Where("manager_id = ? AND dependent_id = ?", managerID, dependentID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *managementGrantRepository) FindByManagerID(db *gorm.DB, managerID uuid.UUID) ([]entity.ManagementGrant, error) {
	var grants []entity.ManagementGrant
	err := db.Preload("Dependent.Profile").
		Joins("JOIN dependents ON dependents.id = management_grants.dependent_id").
		Where("management_grants.manager_id = ?", managerID).
		Order("dependents.created_at ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// Delete removes the relationship only. The dependent and its profile stay.
func (r *managementGrantRepository) Delete(db *gorm.DB, managerID, dependentID uuid.UUID) (int64, error) {
	result := db.Where("manager_id = ? AND dependent_id = ?", managerID, dependentID).
		Delete(&entity.ManagementGrant{})
	return result.RowsAffected, result.Error
}
