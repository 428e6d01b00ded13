package repository

import (
	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CenterRepository interface {
	Create(db *gorm.DB, center *entity.Center) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Center, error)
}

// CenterLinkRepository manages the soft-deactivated center join tables.
// Upserts are keyed on the unique (center, member) pair.
type CenterLinkRepository interface {
	UpsertPractitionerLink(db *gorm.DB, link *entity.CenterPractitionerLink) error
	UpsertPatientLink(db *gorm.DB, link *entity.CenterPatientLink) error
	DeactivatePractitionerLink(db *gorm.DB, centerID, practitionerID uuid.UUID) (int64, error)
	DeactivatePatientLink(db *gorm.DB, centerID, patientID uuid.UUID) (int64, error)
	FindPractitionerLink(db *gorm.DB, centerID, practitionerID uuid.UUID) (*entity.CenterPractitionerLink, error)
	FindPatientLink(db *gorm.DB, centerID, patientID uuid.UUID) (*entity.CenterPatientLink, error)
	// FindActivePatientLinks returns the patient's active links with Center preloaded.
	FindActivePatientLinks(db *gorm.DB, patientID uuid.UUID) ([]entity.CenterPatientLink, error)
	// FindActivePractitionerLinks returns active links at the given centers whose
	// practitioner is active, with Practitioner preloaded.
	FindActivePractitionerLinks(db *gorm.DB, centerIDs []uuid.UUID) ([]entity.CenterPractitionerLink, error)
}
