package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CenterPractitionerLink joins a center and a practitioner. At most one row
// exists per pair; unlinking flips IsActive instead of deleting the row.
type CenterPractitionerLink struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_center_practitioner" json:"center_id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_center_practitioner;index" json:"practitioner_id"`
	IsActive       bool      `gorm:"not null;index" json:"is_active"`
	LinkedAt       time.Time `gorm:"not null" json:"linked_at"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practitioner Practitioner `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Center       Center       `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

func (CenterPractitionerLink) TableName() string {
	return "center_practitioner_links"
}

func (l *CenterPractitionerLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CenterPatientLink joins a center and a patient, same soft-deactivation rules
// as CenterPractitionerLink.
type CenterPatientLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_center_patient" json:"center_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_center_patient;index" json:"patient_id"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	LinkedAt  time.Time `gorm:"not null" json:"linked_at"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Center Center `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

func (CenterPatientLink) TableName() string {
	return "center_patient_links"
}

func (l *CenterPatientLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
