package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity with Specialty and City loaded
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := doctorResponse(doctor)
	return &response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = doctorResponse(&doctors[i])
	}
	return responses
}

func DoctorAvailabilityToWorkingHours(a *entity.DoctorAvailability) *dto.WorkingHoursResponse {
	if a == nil {
		return nil
	}
	return &dto.WorkingHoursResponse{
		WorkStart:           a.WorkStart,
		WorkEnd:             a.WorkEnd,
		DefaultSlotDuration: a.DefaultSlotDuration,
	}
}

func CitiesToResponses(cities []entity.City) []dto.CityResponse {
	responses := make([]dto.CityResponse, len(cities))
	for i, city := range cities {
		responses[i] = dto.CityResponse{
			ID:     city.ID,
			Name:   city.Name,
			Region: city.Region,
		}
	}
	return responses
}

func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, specialty := range specialties {
		responses[i] = dto.SpecialtyResponse{
			ID:   specialty.ID,
			Name: specialty.Name,
		}
	}
	return responses
}

func doctorResponse(doctor *entity.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Address:         derefString(doctor.Address),
		SpecialtyID:     doctor.SpecialtyID,
		Specialty:       doctor.Specialty.Name,
		CityID:          doctor.CityID,
		City:            doctor.City.Name,
		Region:          doctor.City.Region,
		ConsultationFee: doctor.ConsultationFee,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
