package usecase

import (
	"context"

	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	SearchDoctors(ctx context.Context, req *dto.SearchDoctorsRequest) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorDetailResponse, error)
	ListCities(ctx context.Context) ([]dto.CityResponse, error)
	ListSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, error)
	WarmReferenceCache(ctx context.Context) error
}

type doctorUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	doctorRepo       repository.DoctorRepository
	specialtyRepo    repository.SpecialtyRepository
	cityRepo         repository.CityRepository
	availabilityRepo repository.AvailabilityRepository
	cache            *service.ReferenceCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	cityRepo repository.CityRepository,
	availabilityRepo repository.AvailabilityRepository,
	cache *service.ReferenceCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		doctorRepo:       doctorRepo,
		specialtyRepo:    specialtyRepo,
		cityRepo:         cityRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
	}
}

// SearchDoctors matches query against doctor and specialty names and
// location against the city name, both case-insensitive substrings
func (u *doctorUsecase) SearchDoctors(ctx context.Context, req *dto.SearchDoctorsRequest) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.Search(u.db.WithContext(ctx), entity.DoctorFilter{
		Query:    req.Query,
		Location: req.Location,
	})
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetDoctor returns the doctor with its working hours
func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorDetailResponse, error) {
	var (
		doctor *entity.Doctor
		hours  *entity.DoctorAvailability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctor, err = u.doctorRepo.FindByID(u.db.WithContext(gctx), id)
		return err
	})
	g.Go(func() error {
		var err error
		hours, err = u.availabilityRepo.FindByDoctorID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return &dto.DoctorDetailResponse{
		DoctorResponse: *converter.DoctorToResponse(doctor),
		WorkingHours:   converter.DoctorAvailabilityToWorkingHours(hours),
	}, nil
}

func (u *doctorUsecase) ListCities(ctx context.Context) ([]dto.CityResponse, error) {
	return service.GetOrLoad(ctx, u.cache, service.CacheKeyCities, u.loadCities)
}

func (u *doctorUsecase) ListSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	return service.GetOrLoad(ctx, u.cache, service.CacheKeySpecialties, u.loadSpecialties)
}

// WarmReferenceCache preloads cities and specialties. Called at startup.
func (u *doctorUsecase) WarmReferenceCache(ctx context.Context) error {
	cities, err := u.loadCities(ctx)
	if err != nil {
		return err
	}
	specialties, err := u.loadSpecialties(ctx)
	if err != nil {
		return err
	}

	return u.cache.Warm(ctx, map[string]interface{}{
		service.CacheKeyCities:      cities,
		service.CacheKeySpecialties: specialties,
	})
}

func (u *doctorUsecase) loadCities(ctx context.Context) ([]dto.CityResponse, error) {
	cities, err := u.cityRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find cities: %+v", err)
		return nil, err
	}
	return converter.CitiesToResponses(cities), nil
}

func (u *doctorUsecase) loadSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}
	return converter.SpecialtiesToResponses(specialties), nil
}
