package usecase

import (
	"context"
	"errors"
	"fmt"

	"rehab-scheduling/internal/converter"
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrInconsistentLinkage = errors.New("patient linkage is inconsistent")
)

type LinkageResolverUsecase interface {
	// Resolve returns the practitioner/center pairs the patient may book
	Resolve(ctx context.Context, patientID uuid.UUID) (*entity.LinkageResult, error)
	GetLinkage(ctx context.Context, patientID uuid.UUID) (*dto.LinkageResponse, error)
}

type linkageResolverUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
	centerLinkRepo   repository.CenterLinkRepository
}

func NewLinkageResolverUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
	centerLinkRepo repository.CenterLinkRepository,
) LinkageResolverUsecase {
	return &linkageResolverUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
		centerLinkRepo:   centerLinkRepo,
	}
}

func (u *linkageResolverUsecase) GetLinkage(ctx context.Context, patientID uuid.UUID) (*dto.LinkageResponse, error) {
	result, err := u.Resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.LinkageToResponse(patientID, result), nil
}

// Resolve never guesses: a fixed patient whose assignment does not map to
// exactly one shared active center yields ErrInconsistentLinkage.
func (u *linkageResolverUsecase) Resolve(ctx context.Context, patientID uuid.UUID) (*entity.LinkageResult, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	patientLinks, err := u.centerLinkRepo.FindActivePatientLinks(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find center links for patient %s: %+v", patientID, err)
		return nil, err
	}

	centerIDs := make([]uuid.UUID, len(patientLinks))
	for i, link := range patientLinks {
		centerIDs[i] = link.CenterID
	}

	practitionerLinks, err := u.centerLinkRepo.FindActivePractitionerLinks(db, centerIDs)
	if err != nil {
		u.log.Warnf("Failed to find practitioner links for patient %s: %+v", patientID, err)
		return nil, err
	}

	if patient.IsFixed() {
		return u.resolveFixed(db, patient, patientLinks, practitionerLinks)
	}

	return resolveSelectable(patientLinks, practitionerLinks), nil
}

func (u *linkageResolverUsecase) resolveFixed(
	db *gorm.DB,
	patient *entity.Patient,
	patientLinks []entity.CenterPatientLink,
	practitionerLinks []entity.CenterPractitionerLink,
) (*entity.LinkageResult, error) {
	assignedID := *patient.AssignedPractitionerID

	practitioner, err := u.practitionerRepo.FindByID(db, assignedID)
	if err != nil {
		u.log.Warnf("Failed to find assigned practitioner %s: %+v", assignedID, err)
		return nil, err
	}
	if practitioner == nil || !practitioner.IsActive {
		u.log.Errorf("Patient %s is assigned to missing or inactive practitioner %s", patient.ID, assignedID)
		return nil, fmt.Errorf("%w: assigned practitioner %s is not active", ErrInconsistentLinkage, assignedID)
	}

	var shared []uuid.UUID
	for _, link := range practitionerLinks {
		if link.PractitionerID == assignedID {
			shared = append(shared, link.CenterID)
		}
	}
	if len(shared) != 1 {
		u.log.Errorf("Patient %s shares %d active centers with assigned practitioner %s", patient.ID, len(shared), assignedID)
		return nil, fmt.Errorf("%w: %d shared centers with practitioner %s", ErrInconsistentLinkage, len(shared), assignedID)
	}

	var center *entity.Center
	for i := range patientLinks {
		if patientLinks[i].CenterID == shared[0] {
			center = &patientLinks[i].Center
			break
		}
	}

	return &entity.LinkageResult{
		Mode:         entity.LinkageModeFixed,
		Practitioner: practitioner,
		Center:       center,
	}, nil
}

func resolveSelectable(patientLinks []entity.CenterPatientLink, practitionerLinks []entity.CenterPractitionerLink) *entity.LinkageResult {
	byCenter := make(map[uuid.UUID][]entity.Practitioner, len(patientLinks))
	for _, link := range practitionerLinks {
		byCenter[link.CenterID] = append(byCenter[link.CenterID], link.Practitioner)
	}

	centers := make([]entity.LinkedCenter, len(patientLinks))
	for i, link := range patientLinks {
		centers[i] = entity.LinkedCenter{
			Center:        link.Center,
			Practitioners: byCenter[link.CenterID],
		}
	}

	return &entity.LinkageResult{
		Mode:    entity.LinkageModeSelectable,
		Centers: centers,
	}
}
