package repository

import (
	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	// LockByID selects the doctor row FOR UPDATE; db must be a transaction.
	LockByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	Search(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error)
}

type SpecialtyRepository interface {
	FindAll(db *gorm.DB) ([]entity.Specialty, error)
}

type CityRepository interface {
	FindAll(db *gorm.DB) ([]entity.City, error)
}
