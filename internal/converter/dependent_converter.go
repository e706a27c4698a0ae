package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
)

// GrantToDependentResponse renders a grant from its manager's point of view.
// Dependent.Profile must be loaded; rights are re-derived from it.
func GrantToDependentResponse(grant *entity.ManagementGrant) dto.DependentResponse {
	profile := &grant.Dependent.Profile
	rights := grant.EffectiveRights(profile)

	return dto.DependentResponse{
		ID:            grant.DependentID,
		AccountExists: profile.HasAccount(),
		Role:          grant.Role,
		Rights: dto.RightsResponse{
			CanModifyProfile:      rights.ModifyProfile,
			CanManageAppointments: rights.ManageAppointments,
			CanManageDocuments:    rights.ManageDocuments,
		},
		Profile:   *ProfileToResponse(profile),
		CreatedAt: grant.Dependent.CreatedAt,
	}
}

func GrantsToDependentResponses(grants []entity.ManagementGrant) []dto.DependentResponse {
	responses := make([]dto.DependentResponse, len(grants))
	for i := range grants {
		responses[i] = GrantToDependentResponse(&grants[i])
	}
	return responses
}
