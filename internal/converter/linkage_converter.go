package converter

import (
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// CenterToResponse converts a Center entity to CenterResponse DTO
func CenterToResponse(center *entity.Center) *dto.CenterResponse {
	if center == nil {
		return nil
	}

	return &dto.CenterResponse{
		ID:      center.ID,
		Name:    center.Name,
		Email:   center.Email,
		Phone:   center.Phone,
		Address: center.Address,
	}
}

// LinkageToResponse converts a resolved linkage to LinkageResponse DTO
func LinkageToResponse(patientID uuid.UUID, result *entity.LinkageResult) *dto.LinkageResponse {
	if result == nil {
		return nil
	}

	response := &dto.LinkageResponse{
		PatientID: patientID,
		Mode:      string(result.Mode),
	}

	if result.Mode == entity.LinkageModeFixed {
		response.Practitioner = PractitionerToResponse(result.Practitioner, nil)
		response.Center = CenterToResponse(result.Center)
		return response
	}

	response.Centers = make([]dto.LinkedCenterResponse, len(result.Centers))
	for i, linked := range result.Centers {
		practitioners := make([]dto.PractitionerResponse, len(linked.Practitioners))
		for j := range linked.Practitioners {
			practitioners[j] = *PractitionerToResponse(&linked.Practitioners[j], nil)
		}
		response.Centers[i] = dto.LinkedCenterResponse{
			Center:        *CenterToResponse(&linked.Center),
			Practitioners: practitioners,
		}
	}

	return response
}
