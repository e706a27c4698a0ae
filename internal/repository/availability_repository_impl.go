package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"beedical/internal/availability"
	"beedical/internal/domain/entity"
	domainRepo "beedical/internal/domain/repository"

	"github.com/google/uuid"
)

type availabilityRepository struct {
	entries []entity.DoctorAvailability
	byID    map[uuid.UUID]int
}

// NewAvailabilityRepository serves a fixed set of dataset entries. Entry
// order matters: the first one is the fallback for unknown doctors.
func NewAvailabilityRepository(entries []entity.DoctorAvailability) domainRepo.AvailabilityRepository {
	byID := make(map[uuid.UUID]int, len(entries))
	for i, e := range entries {
		if _, dup := byID[e.DoctorID]; !dup {
			byID[e.DoctorID] = i
		}
	}
	return &availabilityRepository{entries: entries, byID: byID}
}

// LoadAvailabilityFile reads and validates the JSON dataset at path
func LoadAvailabilityFile(path string) (domainRepo.AvailabilityRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read availability dataset: %w", err)
	}

	var entries []entity.DoctorAvailability
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode availability dataset %s: %w", path, err)
	}

	for i, e := range entries {
		if err := validateAvailability(e); err != nil {
			return nil, fmt.Errorf("availability dataset entry %d (doctor %s): %w", i, e.DoctorID, err)
		}
	}

	return NewAvailabilityRepository(entries), nil
}

func (r *availabilityRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorAvailability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(r.entries) == 0 {
		return nil, nil
	}

	idx, ok := r.byID[doctorID]
	if !ok {
		idx = 0
	}
	entry := r.entries[idx]
	return &entry, nil
}

func validateAvailability(e entity.DoctorAvailability) error {
	work, err := availability.ParseWindow(e.WorkStart, e.WorkEnd)
	if err != nil {
		return err
	}
	if work.Start >= work.End {
		return fmt.Errorf("working hours %s-%s are empty", e.WorkStart, e.WorkEnd)
	}
	if e.DefaultSlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive, got %d", e.DefaultSlotDuration)
	}
	for _, w := range e.Unavailability {
		if _, err := availability.ParseWindow(w.Start, w.End); err != nil {
			return err
		}
	}
	return nil
}
