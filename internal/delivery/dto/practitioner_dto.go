package dto

import "github.com/google/uuid"

type WorkloadResponse struct {
	PractitionerID      uuid.UUID `json:"practitionerId"`
	CurrentPatients     int64     `json:"currentPatients"`
	ActivePlans         int64     `json:"activePlans"`
	TotalPatientsServed int64     `json:"totalPatientsServed"`
}

type PractitionerResponse struct {
	ID             uuid.UUID         `json:"id"`
	FullName       string            `json:"fullName"`
	Specialization string            `json:"specialization"`
	IsActive       bool              `json:"isActive"`
	Workload       *WorkloadResponse `json:"workload,omitempty"`
}

type PractitionerListResponse struct {
	CenterID      uuid.UUID              `json:"centerId"`
	Practitioners []PractitionerResponse `json:"practitioners"`
	Total         int                    `json:"total"`
}
