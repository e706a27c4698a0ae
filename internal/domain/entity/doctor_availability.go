package entity

import "github.com/google/uuid"

// DoctorAvailability is the static working-hours record of a doctor. It comes
// from the availability dataset, not from the database.
type DoctorAvailability struct {
	DoctorID            uuid.UUID              `json:"doctorId"`
	WorkStart           string                 `json:"workStart"`
	WorkEnd             string                 `json:"workEnd"`
	DefaultSlotDuration int                    `json:"defaultSlotDuration"`
	Unavailability      []UnavailabilityWindow `json:"unavailabilityWindows"`
}

type UnavailabilityWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
