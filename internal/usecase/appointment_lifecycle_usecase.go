package usecase

import (
	"context"
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

type AppointmentLifecycleUsecase interface {
	Confirm(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Start(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	History(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) ([]dto.AuditLogResponse, error)
}

type appointmentLifecycleUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	notifier        service.Notifier
	now             func() time.Time
}

func NewAppointmentLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	now func() time.Time,
) AppointmentLifecycleUsecase {
	return &appointmentLifecycleUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		notifier:        notifier,
		now:             now,
	}
}

func (u *appointmentLifecycleUsecase) Confirm(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AppointmentStatusConfirmed, service.EventAppointmentConfirmed)
}

func (u *appointmentLifecycleUsecase) Start(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AppointmentStatusInProgress, service.EventAppointmentStarted)
}

func (u *appointmentLifecycleUsecase) Complete(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AppointmentStatusCompleted, service.EventAppointmentCompleted)
}

func (u *appointmentLifecycleUsecase) MarkNoShow(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AppointmentStatusNoShow, service.EventAppointmentNoShow)
}

func (u *appointmentLifecycleUsecase) Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AppointmentStatusCancelled, service.EventAppointmentCancelled)
}

// History returns the audit trail of an appointment, oldest first
func (u *appointmentLifecycleUsecase) History(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) ([]dto.AuditLogResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !actorOwns(actor, appointment) {
		return nil, ErrAppointmentNotOwned
	}

	logs, err := u.auditService.History(ctx, entity.AuditEntityAppointment, appointmentID.String())
	if err != nil {
		return nil, err
	}

	return converter.AuditLogsToResponses(logs), nil
}

// transition applies one status change with the appointment row locked.
// Nothing is written when the change is not allowed.
func (u *appointmentLifecycleUsecase) transition(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, target entity.AppointmentStatus, event string) (*dto.AppointmentResponse, error) {
	now := u.now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.LockByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to lock appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !mayTransition(actor, appointment, target) {
		return nil, ErrAppointmentNotOwned
	}

	from := appointment.Status
	if err := appointment.Transition(target, now); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}

	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentStatus,
		entity.AuditEntityAppointment, appointment.ID.String(),
		map[string]interface{}{"status": from}, map[string]interface{}{"status": target}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s moved %s -> %s", appointment.ID, from, target)
	u.notifier.Notify(appointment, event)

	return converter.AppointmentToResponse(appointment), nil
}

// mayTransition: patients confirm or cancel their own appointments, staff act
// on their center, practitioners on appointments assigned to them.
func mayTransition(actor entity.Actor, appointment *entity.Appointment, target entity.AppointmentStatus) bool {
	if !actorOwns(actor, appointment) {
		return false
	}
	if _, ok := actor.(entity.PatientActor); ok {
		return target == entity.AppointmentStatusConfirmed || target == entity.AppointmentStatusCancelled
	}
	return true
}
