package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a person receiving care. AssignedPractitionerID pins the patient
// to a single practitioner for booking purposes.
type Patient struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	FullName               string     `gorm:"type:varchar(255);not null" json:"full_name"`
	AssignedPractitionerID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_practitioner_id,omitempty"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsFixed reports whether the patient may only book their assigned practitioner.
func (p *Patient) IsFixed() bool {
	return p.AssignedPractitionerID != nil && *p.AssignedPractitionerID != uuid.Nil
}
