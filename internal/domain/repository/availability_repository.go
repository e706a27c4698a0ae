package repository

import (
	"context"

	"beedical/internal/domain/entity"

	"github.com/google/uuid"
)

// AvailabilityRepository reads the static working-hours dataset
type AvailabilityRepository interface {
	// FindByDoctorID falls back to the first dataset entry when the doctor
	// has none. It returns nil, nil only when the dataset is empty.
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorAvailability, error)
}
