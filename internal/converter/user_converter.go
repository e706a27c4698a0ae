package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Email:      user.Email,
		FullName:   user.FullName,
		CreatedAt:  user.CreatedAt,
	}
}

// ProfileToResponse converts a Profile entity to ProfileResponse DTO
func ProfileToResponse(profile *entity.Profile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfileResponse{
		ID:              profile.ID,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		Sex:             profile.Sex,
		BirthPlace:      profile.BirthPlace,
		Address:         profile.Address,
		PostalCode:      profile.PostalCode,
		City:            profile.City,
		Phone:           profile.Phone,
		Email:           profile.Email,
		HealthInsurance: profile.HealthInsurance,
		CIN:             derefString(profile.CIN),
		Profession:      profile.Profession,
		PhotoURL:        derefString(profile.PhotoURL),
		HasAccount:      profile.HasAccount(),
		UpdatedAt:       profile.UpdatedAt,
	}
	if profile.BirthDate != nil {
		response.BirthDate = profile.BirthDate.Format("2006-01-02")
	}

	return response
}
