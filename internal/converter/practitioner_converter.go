package converter

import (
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// PractitionerToResponse converts a Practitioner entity to PractitionerResponse DTO.
// workload may be nil.
func PractitionerToResponse(practitioner *entity.Practitioner, workload *entity.Workload) *dto.PractitionerResponse {
	if practitioner == nil {
		return nil
	}

	response := &dto.PractitionerResponse{
		ID:             practitioner.ID,
		FullName:       practitioner.FullName,
		Specialization: practitioner.Specialization,
		IsActive:       practitioner.IsActive,
	}
	if workload != nil {
		response.Workload = WorkloadToResponse(practitioner.ID, workload)
	}

	return response
}

// WorkloadToResponse converts a Workload to WorkloadResponse DTO
func WorkloadToResponse(practitionerID uuid.UUID, workload *entity.Workload) *dto.WorkloadResponse {
	if workload == nil {
		return nil
	}

	return &dto.WorkloadResponse{
		PractitionerID:      practitionerID,
		CurrentPatients:     workload.CurrentPatients,
		ActivePlans:         workload.ActivePlans,
		TotalPatientsServed: workload.TotalPatientsServed,
	}
}
