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

type centerLinkRepository struct{}

func NewCenterLinkRepository() domainRepo.CenterLinkRepository {
	return &centerLinkRepository{}
}

// UpsertPractitionerLink inserts the link or, when the pair already exists,
// reactivates the existing row. link is reloaded so its ID is the stored one.
func (r *centerLinkRepository) UpsertPractitionerLink(db *gorm.DB, link *entity.CenterPractitionerLink) error {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "center_id"}, {Name: "practitioner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "linked_at", "notes", "updated_at"}),
	}).Create(link).Error
	if err != nil {
		return err
	}
	var stored entity.CenterPractitionerLink
	if err := db.Where("center_id = ? AND practitioner_id = ?", link.CenterID, link.PractitionerID).First(&stored).Error; err != nil {
		return err
	}
	*link = stored
	return nil
}

func (r *centerLinkRepository) UpsertPatientLink(db *gorm.DB, link *entity.CenterPatientLink) error {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "center_id"}, {Name: "patient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "linked_at", "notes", "updated_at"}),
	}).Create(link).Error
	if err != nil {
		return err
	}
	var stored entity.CenterPatientLink
	if err := db.Where("center_id = ? AND patient_id = ?", link.CenterID, link.PatientID).First(&stored).Error; err != nil {
		return err
	}
	*link = stored
	return nil
}

// DeactivatePractitionerLink flips an active link to inactive.
// Returns affected rows: 0 means no active link existed.
func (r *centerLinkRepository) DeactivatePractitionerLink(db *gorm.DB, centerID, practitionerID uuid.UUID) (int64, error) {
	result := db.Model(&entity.CenterPractitionerLink{}).
		Where("center_id = ? AND practitioner_id = ? AND is_active = ?", centerID, practitionerID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

func (r *centerLinkRepository) DeactivatePatientLink(db *gorm.DB, centerID, patientID uuid.UUID) (int64, error) {
	result := db.Model(&entity.CenterPatientLink{}).
		Where("center_id = ? AND patient_id = ? AND is_active = ?", centerID, patientID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

func (r *centerLinkRepository) FindPractitionerLink(db *gorm.DB, centerID, practitionerID uuid.UUID) (*entity.CenterPractitionerLink, error) {
	var link entity.CenterPractitionerLink
	err := db.Where("center_id = ? AND practitioner_id = ?", centerID, practitionerID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *centerLinkRepository) FindPatientLink(db *gorm.DB, centerID, patientID uuid.UUID) (*entity.CenterPatientLink, error) {
	var link entity.CenterPatientLink
	err := db.Where("center_id = ? AND patient_id = ?", centerID, patientID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *centerLinkRepository) FindActivePatientLinks(db *gorm.DB, patientID uuid.UUID) ([]entity.CenterPatientLink, error) {
	var links []entity.CenterPatientLink
	err := db.Preload("Center").
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("linked_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *centerLinkRepository) FindActivePractitionerLinks(db *gorm.DB, centerIDs []uuid.UUID) ([]entity.CenterPractitionerLink, error) {
	if len(centerIDs) == 0 {
		return nil, nil
	}
	var links []entity.CenterPractitionerLink
	err := db.Preload("Practitioner").
		Joins("JOIN practitioners ON practitioners.id = center_practitioner_links.practitioner_id").
		Where("center_practitioner_links.center_id IN ?", centerIDs).
		Where("center_practitioner_links.is_active = ?", true).
		Where("practitioners.is_active = ?", true).
		Order("practitioners.full_name ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
