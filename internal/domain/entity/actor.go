package entity

import "github.com/google/uuid"

// Actor is the authenticated caller of a scheduling operation. Booking rules
// are dispatched on the concrete variant.
type Actor interface {
	ActorUserID() uuid.UUID
	RoleName() string
}

// PatientActor books for themself, within their resolved linkage.
type PatientActor struct {
	UserID    uuid.UUID
	PatientID uuid.UUID
}

func (a PatientActor) ActorUserID() uuid.UUID { return a.UserID }
func (a PatientActor) RoleName() string        { return RolePatient }

// CenterStaffActor books any practitioner/patient pair linked to CenterID.
type CenterStaffActor struct {
	UserID   uuid.UUID
	CenterID uuid.UUID
}

func (a CenterStaffActor) ActorUserID() uuid.UUID { return a.UserID }
func (a CenterStaffActor) RoleName() string        { return RoleCenterStaff }

// PractitionerActor may only move their own appointments through the lifecycle.
type PractitionerActor struct {
	UserID         uuid.UUID
	PractitionerID uuid.UUID
}

func (a PractitionerActor) ActorUserID() uuid.UUID { return a.UserID }
func (a PractitionerActor) RoleName() string        { return RolePractitioner }

// NewActor builds the variant matching roleID; subjectID is the patient,
// center or practitioner id carried in the session.
func NewActor(userID uuid.UUID, roleID int, subjectID uuid.UUID) (Actor, bool) {
	if subjectID == uuid.Nil {
		return nil, false
	}
	switch roleID {
	case RoleIDPatient:
		return PatientActor{UserID: userID, PatientID: subjectID}, true
	case RoleIDCenterStaff:
		return CenterStaffActor{UserID: userID, CenterID: subjectID}, true
	case RoleIDPractitioner:
		return PractitionerActor{UserID: userID, PractitionerID: subjectID}, true
	default:
		return nil, false
	}
}
