package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertCenterLinkRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

type CenterLinkResponse struct {
	ID             uuid.UUID  `json:"id"`
	CenterID       uuid.UUID  `json:"centerId"`
	PractitionerID *uuid.UUID `json:"practitionerId,omitempty"`
	PatientID      *uuid.UUID `json:"patientId,omitempty"`
	IsActive       bool       `json:"isActive"`
	LinkedAt       time.Time  `json:"linkedAt"`
	Notes          string     `json:"notes,omitempty"`
}
