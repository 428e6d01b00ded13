package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Practitioner is a bookable specialist. Practitioners are deactivated,
// never deleted.
type Practitioner struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	FullName       string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization string     `gorm:"type:varchar(100);not null;index" json:"specialization"`
	IsActive       bool       `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Practitioner) TableName() string {
	return "practitioners"
}

func (p *Practitioner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
