package dto

import "github.com/google/uuid"

type CenterResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`
}

type LinkedCenterResponse struct {
	Center        CenterResponse         `json:"center"`
	Practitioners []PractitionerResponse `json:"practitioners"`
}

// LinkageResponse carries Practitioner and Center in FIXED mode and
// Centers in SELECTABLE mode.
type LinkageResponse struct {
	PatientID    uuid.UUID              `json:"patientId"`
	Mode         string                 `json:"mode"`
	Practitioner *PractitionerResponse  `json:"practitioner,omitempty"`
	Center       *CenterResponse        `json:"center,omitempty"`
	Centers      []LinkedCenterResponse `json:"centers,omitempty"`
}
