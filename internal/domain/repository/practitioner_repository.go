package repository

import (
	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PractitionerRepository interface {
	Create(db *gorm.DB, practitioner *entity.Practitioner) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Practitioner, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Practitioner, error)
	// LockByID loads the practitioner with a row lock held until the
	// surrounding transaction ends. Bookings for one practitioner serialize on it.
	LockByID(db *gorm.DB, id uuid.UUID) (*entity.Practitioner, error)
	FindActiveByCenter(db *gorm.DB, centerID uuid.UUID, filter *entity.PractitionerFilter) ([]entity.Practitioner, error)
}
