package repository

import (
	"errors"

	"rehab-scheduling/internal/domain/entity"
	domainRepo "rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type centerRepository struct{}

func NewCenterRepository() domainRepo.CenterRepository {
	return &centerRepository{}
}

func (r *centerRepository) Create(db *gorm.DB, center *entity.Center) error {
	return db.Create(center).Error
}

func (r *centerRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Center, error) {
	var center entity.Center
	err := db.Where("id = ?", id).First(&center).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &center, nil
}
