package repository

import (
	"errors"
	"time"

	"rehab-scheduling/internal/domain/entity"
	domainRepo "rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindOverlapping applies the half-open overlap test in SQL:
// existing.start < to AND existing.end > from.
func (r *appointmentRepository) FindOverlapping(db *gorm.DB, practitionerID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.
		Where("practitioner_id = ?", practitionerID).
		Where("status <> ?", entity.AppointmentStatusCancelled).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC())

	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	err := query.Order("start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.CenterID != nil {
			query = query.Where("center_id = ?", *filter.CenterID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.PractitionerID != nil {
			query = query.Where("practitioner_id = ?", *filter.PractitionerID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.From != nil {
			query = query.Where("end_time > ?", filter.From.UTC())
		}
		if filter.To != nil {
			query = query.Where("start_time < ?", filter.To.UTC())
		}
	}

	err := query.Order("start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
