package repository

import (
	"errors"
	"strings"

	"rehab-scheduling/internal/domain/entity"
	domainRepo "rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type practitionerRepository struct{}

func NewPractitionerRepository() domainRepo.PractitionerRepository {
	return &practitionerRepository{}
}

func (r *practitionerRepository) Create(db *gorm.DB, practitioner *entity.Practitioner) error {
	return db.Create(practitioner).Error
}

func (r *practitionerRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Practitioner, error) {
	var practitioner entity.Practitioner
	err := db.Where("id = ?", id).First(&practitioner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &practitioner, nil
}

func (r *practitionerRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Practitioner, error) {
	var practitioner entity.Practitioner
	err := db.Where("user_id = ?", userID).First(&practitioner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &practitioner, nil
}

func (r *practitionerRepository) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Practitioner, error) {
	var practitioner entity.Practitioner
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&practitioner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &practitioner, nil
}

// FindActiveByCenter returns active practitioners holding an active link to the center.
// LOWER(..) LIKE keeps the filter portable between Postgres and SQLite.
func (r *practitionerRepository) FindActiveByCenter(db *gorm.DB, centerID uuid.UUID, filter *entity.PractitionerFilter) ([]entity.Practitioner, error) {
	var practitioners []entity.Practitioner
	query := db.
		Joins("JOIN center_practitioner_links ON center_practitioner_links.practitioner_id = practitioners.id").
		Where("center_practitioner_links.center_id = ?", centerID).
		Where("center_practitioner_links.is_active = ?", true).
		Where("practitioners.is_active = ?", true)

	if filter != nil {
		if filter.Specialization != "" {
			query = query.Where("LOWER(practitioners.specialization) LIKE ?", "%"+strings.ToLower(filter.Specialization)+"%")
		}
		if filter.Name != "" {
			query = query.Where("LOWER(practitioners.full_name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
		}
	}

	err := query.Order("practitioners.full_name ASC").Find(&practitioners).Error
	if err != nil {
		return nil, err
	}
	return practitioners, nil
}
