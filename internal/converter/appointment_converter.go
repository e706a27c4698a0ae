package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity. Doctor and patient
// blocks are filled only when the relations were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		ProfileID: appointment.ProfileID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date.Format("2006-01-02"),
		StartTime: appointment.StartTime,
		EndTime:   appointment.EndTime,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}

	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = &dto.AppointmentDoctorResponse{
			ID:        appointment.Doctor.ID,
			Name:      appointment.Doctor.Name,
			Address:   derefString(appointment.Doctor.Address),
			Specialty: appointment.Doctor.Specialty.Name,
			City:      appointment.Doctor.City.Name,
		}
	}

	if appointment.Profile.ID != uuid.Nil {
		response.Patient = &dto.AppointmentPatientResponse{
			ID:        appointment.Profile.ID,
			FirstName: appointment.Profile.FirstName,
			LastName:  appointment.Profile.LastName,
			Email:     appointment.Profile.Email,
			Phone:     appointment.Profile.Phone,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// ConfirmedSlotsByDoctor groups busy intervals per doctor id, keeping the
// order of slots
func ConfirmedSlotsByDoctor(slots []entity.ConfirmedSlot) dto.ConfirmedByDoctorResponse {
	grouped := make(dto.ConfirmedByDoctorResponse)
	for _, slot := range slots {
		key := slot.DoctorID.String()
		grouped[key] = append(grouped[key], dto.ConfirmedSlotResponse{
			Date:      slot.Date.Format("2006-01-02"),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return grouped
}
