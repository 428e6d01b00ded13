package entity

import (
	"time"

	"github.com/google/uuid"
)

// PractitionerFilter is a domain-level filter for listing practitioners.
// Used by repository layer to avoid coupling with delivery DTOs.
type PractitionerFilter struct {
	Specialization string // case-insensitive substring
	Name           string // case-insensitive substring of full name
}

// AppointmentFilter narrows appointment listings. Nil or zero fields match anything.
type AppointmentFilter struct {
	CenterID       *uuid.UUID
	PatientID      *uuid.UUID
	PractitionerID *uuid.UUID
	Status         AppointmentStatus
	From           *time.Time // appointments ending after From
	To             *time.Time // appointments starting before To
}
