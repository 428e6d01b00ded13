package repository

import (
	"time"

	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	// AggregateWorkload computes all three workload counters in one query,
	// treating prescriptions with status ACTIVE and end_date >= now as current.
	AggregateWorkload(db *gorm.DB, practitionerID uuid.UUID, now time.Time) (*entity.Workload, error)
}
