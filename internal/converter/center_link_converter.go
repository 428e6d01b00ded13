package converter

import (
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
)

// PractitionerLinkToResponse converts a CenterPractitionerLink to CenterLinkResponse DTO
func PractitionerLinkToResponse(link *entity.CenterPractitionerLink) *dto.CenterLinkResponse {
	if link == nil {
		return nil
	}

	practitionerID := link.PractitionerID
	return &dto.CenterLinkResponse{
		ID:             link.ID,
		CenterID:       link.CenterID,
		PractitionerID: &practitionerID,
		IsActive:       link.IsActive,
		LinkedAt:       link.LinkedAt,
		Notes:          link.Notes,
	}
}

// PatientLinkToResponse converts a CenterPatientLink to CenterLinkResponse DTO
func PatientLinkToResponse(link *entity.CenterPatientLink) *dto.CenterLinkResponse {
	if link == nil {
		return nil
	}

	patientID := link.PatientID
	return &dto.CenterLinkResponse{
		ID:        link.ID,
		CenterID:  link.CenterID,
		PatientID: &patientID,
		IsActive:  link.IsActive,
		LinkedAt:  link.LinkedAt,
		Notes:     link.Notes,
	}
}
