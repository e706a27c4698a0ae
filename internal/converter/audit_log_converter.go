package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
)

// AuditLogsToActivities converts audit rows to the caller's activity feed
func AuditLogsToActivities(logs []entity.AuditLog) []dto.ActivityResponse {
	responses := make([]dto.ActivityResponse, len(logs))
	for i, log := range logs {
		responses[i] = dto.ActivityResponse{
			ID:        log.ID,
			Action:    log.Action,
			Metadata:  log.Metadata,
			CreatedAt: log.CreatedAt,
		}
	}
	return responses
}
