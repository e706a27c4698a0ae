package repository

import (
	"errors"
	"strings"

	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Specialty").Preload("City").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// Search matches the query against doctor or specialty name and the location
// against city name, case-insensitively.
func (r *doctorRepository) Search(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	query := db.Model(&entity.Doctor{}).
		Joins("JOIN specialties ON specialties.id = doctors.specialty_id").
		Joins("JOIN cities ON cities.id = doctors.city_id").
		Preload("Specialty").
		Preload("City")

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		query = query.Where("doctors.name ILIKE ? OR specialties.name ILIKE ?", pattern, pattern)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where("cities.name ILIKE ?", containsPattern(loc))
	}

	var doctors []entity.Doctor
	if err := query.Order("doctors.name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// containsPattern escapes LIKE wildcards so user input matches literally
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) FindAll(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	if err := db.Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

type cityRepository struct{}

func NewCityRepository() domainRepo.CityRepository {
	return &cityRepository{}
}

func (r *cityRepository) FindAll(db *gorm.DB) ([]entity.City, error) {
	var cities []entity.City
	if err := db.Order("name ASC").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}
