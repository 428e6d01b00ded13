package repository

import (
	"time"

	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// LockByID loads the appointment with a row lock held until the
	// surrounding transaction ends.
	LockByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindOverlapping returns non-cancelled appointments of the practitioner
	// intersecting [from, to), ordered by start time. excludeID may be uuid.Nil.
	FindOverlapping(db *gorm.DB, practitionerID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
}
