package repository

import (
	"time"

	"rehab-scheduling/internal/domain/entity"
	domainRepo "rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

// AggregateWorkload counts in a single statement so every counter sees the
// same snapshot and the same now.
func (r *prescriptionRepository) AggregateWorkload(db *gorm.DB, practitionerID uuid.UUID, now time.Time) (*entity.Workload, error) {
	var workload entity.Workload
	err := db.Model(&entity.Prescription{}).
		Select(`
			COUNT(DISTINCT CASE WHEN status = ? AND end_date >= ? THEN patient_id END) AS current_patients,
			COUNT(CASE WHEN status = ? AND end_date >= ? THEN 1 END) AS active_plans,
			COUNT(DISTINCT patient_id) AS total_patients_served
		`, entity.PrescriptionStatusActive, now.UTC(), entity.PrescriptionStatusActive, now.UTC()).
		Where("practitioner_id = ?", practitionerID).
		Scan(&workload).Error
	if err != nil {
		return nil, err
	}
	return &workload, nil
}
