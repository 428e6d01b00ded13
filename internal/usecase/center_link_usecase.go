package usecase

import (
	"context"
	"errors"
	"time"

	"rehab-scheduling/internal/converter"
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/domain/repository"
	"rehab-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrLinkNotFound = errors.New("active link not found")

// CenterLinkUsecase administers center membership. Links are upserted on
// their (center, member) pair and deactivated instead of deleted.
type CenterLinkUsecase interface {
	LinkPractitioner(ctx context.Context, actor entity.Actor, centerID, practitionerID uuid.UUID, req *dto.UpsertCenterLinkRequest) (*dto.CenterLinkResponse, error)
	UnlinkPractitioner(ctx context.Context, actor entity.Actor, centerID, practitionerID uuid.UUID) error
	LinkPatient(ctx context.Context, actor entity.Actor, centerID, patientID uuid.UUID, req *dto.UpsertCenterLinkRequest) (*dto.CenterLinkResponse, error)
	UnlinkPatient(ctx context.Context, actor entity.Actor, centerID, patientID uuid.UUID) error
}

type centerLinkUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	centerRepo       repository.CenterRepository
	centerLinkRepo   repository.CenterLinkRepository
	practitionerRepo repository.PractitionerRepository
	patientRepo      repository.PatientRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewCenterLinkUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	centerRepo repository.CenterRepository,
	centerLinkRepo repository.CenterLinkRepository,
	practitionerRepo repository.PractitionerRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	now func() time.Time,
) CenterLinkUsecase {
	return &centerLinkUsecase{
		db:               db,
		log:              log,
		centerRepo:       centerRepo,
		centerLinkRepo:   centerLinkRepo,
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
		now:              now,
	}
}

func (u *centerLinkUsecase) LinkPractitioner(ctx context.Context, actor entity.Actor, centerID, practitionerID uuid.UUID, req *dto.UpsertCenterLinkRequest) (*dto.CenterLinkResponse, error) {
	if err := u.checkStaff(ctx, actor, centerID); err != nil {
		return nil, err
	}

	practitioner, err := u.practitionerRepo.FindByID(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	now := u.now().UTC()
	link := &entity.CenterPractitionerLink{
		CenterID:       centerID,
		PractitionerID: practitionerID,
		IsActive:       true,
		LinkedAt:       now,
		Notes:          notesOf(req),
		UpdatedAt:      now,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.centerLinkRepo.UpsertPractitionerLink(tx, link); err != nil {
		u.log.Warnf("Failed to upsert practitioner link: %+v", err)
		return nil, err
	}

	response := converter.PractitionerLinkToResponse(link)
	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPractitionerLink,
		entity.AuditEntityCenterPractitionerLink, link.ID.String(), nil, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Practitioner %s linked to center %s", practitionerID, centerID)
	return response, nil
}

func (u *centerLinkUsecase) UnlinkPractitioner(ctx context.Context, actor entity.Actor, centerID, practitionerID uuid.UUID) error {
	if err := u.checkStaff(ctx, actor, centerID); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.centerLinkRepo.DeactivatePractitionerLink(tx, centerID, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to deactivate practitioner link: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrLinkNotFound
	}

	link, err := u.centerLinkRepo.FindPractitionerLink(tx, centerID, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to reload practitioner link: %+v", err)
		return err
	}

	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPractitionerUnlink,
		entity.AuditEntityCenterPractitionerLink, link.ID.String(),
		map[string]interface{}{"is_active": true}, map[string]interface{}{"is_active": false}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Practitioner %s unlinked from center %s", practitionerID, centerID)
	return nil
}

func (u *centerLinkUsecase) LinkPatient(ctx context.Context, actor entity.Actor, centerID, patientID uuid.UUID, req *dto.UpsertCenterLinkRequest) (*dto.CenterLinkResponse, error) {
	if err := u.checkStaff(ctx, actor, centerID); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := u.now().UTC()
	link := &entity.CenterPatientLink{
		CenterID:  centerID,
		PatientID: patientID,
		IsActive:  true,
		LinkedAt:  now,
		Notes:     notesOf(req),
		UpdatedAt: now,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.centerLinkRepo.UpsertPatientLink(tx, link); err != nil {
		u.log.Warnf("Failed to upsert patient link: %+v", err)
		return nil, err
	}

	response := converter.PatientLinkToResponse(link)
	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPatientLink,
		entity.AuditEntityCenterPatientLink, link.ID.String(), nil, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient %s linked to center %s", patientID, centerID)
	return response, nil
}

func (u *centerLinkUsecase) UnlinkPatient(ctx context.Context, actor entity.Actor, centerID, patientID uuid.UUID) error {
	if err := u.checkStaff(ctx, actor, centerID); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.centerLinkRepo.DeactivatePatientLink(tx, centerID, patientID)
	if err != nil {
		u.log.Warnf("Failed to deactivate patient link: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrLinkNotFound
	}

	link, err := u.centerLinkRepo.FindPatientLink(tx, centerID, patientID)
	if err != nil {
		u.log.Warnf("Failed to reload patient link: %+v", err)
		return err
	}

	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPatientUnlink,
		entity.AuditEntityCenterPatientLink, link.ID.String(),
		map[string]interface{}{"is_active": true}, map[string]interface{}{"is_active": false}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient %s unlinked from center %s", patientID, centerID)
	return nil
}

// checkStaff allows only staff of centerID, and only for an existing center
func (u *centerLinkUsecase) checkStaff(ctx context.Context, actor entity.Actor, centerID uuid.UUID) error {
	staff, ok := actor.(entity.CenterStaffActor)
	if !ok || staff.CenterID != centerID {
		return ErrForbiddenActor
	}

	center, err := u.centerRepo.FindByID(u.db.WithContext(ctx), centerID)
	if err != nil {
		u.log.Warnf("Failed to find center %s: %+v", centerID, err)
		return err
	}
	if center == nil {
		return ErrCenterNotFound
	}
	return nil
}

func notesOf(req *dto.UpsertCenterLinkRequest) string {
	if req == nil {
		return ""
	}
	return req.Notes
}
