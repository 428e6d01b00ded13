package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "ACTIVE"
	PrescriptionStatusCompleted PrescriptionStatus = "COMPLETED"
	PrescriptionStatusCancelled PrescriptionStatus = "CANCELLED"
)

// Prescription is an exercise plan assigned by a practitioner to a patient.
type Prescription struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID uuid.UUID          `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	StartDate      time.Time          `gorm:"not null" json:"start_date"`
	EndDate        time.Time          `gorm:"not null;index" json:"end_date"`
	Status         PrescriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Workload summarises a practitioner's caseload. CurrentPatients counts
// distinct patients, ActivePlans counts prescriptions, over the same filter.
type Workload struct {
	CurrentPatients     int64 `json:"currentPatients"`
	ActivePlans         int64 `json:"activePlans"`
	TotalPatientsServed int64 `json:"totalPatientsServed"`
}
