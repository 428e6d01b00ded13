package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rehab-scheduling/internal/converter"
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/domain/repository"
	"rehab-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
	ErrUnauthorizedLinkage = errors.New("practitioner and center are outside your permitted linkage")
	ErrForbiddenActor      = errors.New("your role cannot perform this operation")
	ErrInvalidTimeRange    = errors.New("invalid appointment time range")
	ErrSlotConflict        = errors.New("time slot is no longer available")
	ErrInvalidTransition   = entity.ErrInvalidTransition
)

type BookingUsecase interface {
	Book(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
}

type bookingUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	practitionerRepo repository.PractitionerRepository
	centerLinkRepo   repository.CenterLinkRepository
	linkageResolver  LinkageResolverUsecase
	lifecycle        AppointmentLifecycleUsecase
	auditService     service.AuditService
	notifier         service.Notifier
	rules            SchedulingRules
	now              func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	practitionerRepo repository.PractitionerRepository,
	centerLinkRepo repository.CenterLinkRepository,
	linkageResolver LinkageResolverUsecase,
	lifecycle AppointmentLifecycleUsecase,
	auditService service.AuditService,
	notifier service.Notifier,
	rules SchedulingRules,
	now func() time.Time,
) BookingUsecase {
	return &bookingUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		practitionerRepo: practitionerRepo,
		centerLinkRepo:   centerLinkRepo,
		linkageResolver:  linkageResolver,
		lifecycle:        lifecycle,
		auditService:     auditService,
		notifier:         notifier,
		rules:            rules,
		now:              now,
	}
}

// Book creates a SCHEDULED appointment.
//
// Flow (first failing step wins):
// 1. Linkage check for the actor variant
// 2. Time validity against working hours and now
// 3. Lock the practitioner row, re-read overlapping appointments
// 4. Insert and audit in the same transaction, notify after commit
func (u *bookingUsecase) Book(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := u.now()

	// Step 1: Linkage
	if err := u.authorizeBooking(ctx, actor, req.PatientID, req.PractitionerID, req.CenterID); err != nil {
		return nil, err
	}

	// Step 2: Time validity
	if err := u.validateTimeRange(req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		CenterID:       req.CenterID,
		PatientID:      req.PatientID,
		PractitionerID: req.PractitionerID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Type:           entity.AppointmentType(req.Type),
		Status:         entity.AppointmentStatusScheduled,
		Notes:          req.Notes,
		MeetingURL:     req.MeetingURL,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Step 3: Conflict check at commit time
	if err := u.reserve(tx, appointment.PractitionerID, appointment.StartTime, appointment.EndTime, uuid.Nil); err != nil {
		return nil, err
	}

	// Step 4: Persist
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	userID := actor.ActorUserID()
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate,
		entity.AuditEntityAppointment, appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s booked for practitioner %s at %s", appointment.ID, appointment.PractitionerID, appointment.StartTime.Format(time.RFC3339))
	u.notifier.Notify(appointment, service.EventAppointmentBooked)

	return converter.AppointmentToResponse(appointment), nil
}

// Update replaces the editable fields of a SCHEDULED or CONFIRMED appointment.
// The conflict check excludes the appointment itself.
func (u *bookingUsecase) Update(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := u.now()

	switch actor.(type) {
	case entity.PatientActor, entity.CenterStaffActor:
	default:
		return nil, ErrForbiddenActor
	}

	current, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if current == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := checkEditable(actor, current); err != nil {
		return nil, err
	}

	if current.PatientID != req.PatientID || current.PractitionerID != req.PractitionerID || current.CenterID != req.CenterID {
		if err := u.authorizeBooking(ctx, actor, req.PatientID, req.PractitionerID, req.CenterID); err != nil {
			return nil, err
		}
	}

	if err := u.validateTimeRange(req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}

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
	// Status may have moved between the first read and the lock
	if err := checkEditable(actor, appointment); err != nil {
		return nil, err
	}

	oldValue := converter.AppointmentToResponse(appointment)

	appointment.Title = req.Title
	appointment.Description = req.Description
	appointment.PatientID = req.PatientID
	appointment.PractitionerID = req.PractitionerID
	appointment.CenterID = req.CenterID
	appointment.StartTime = req.StartTime
	appointment.EndTime = req.EndTime
	appointment.Type = entity.AppointmentType(req.Type)
	appointment.Notes = req.Notes
	appointment.MeetingURL = req.MeetingURL

	if err := u.reserve(tx, appointment.PractitionerID, appointment.StartTime, appointment.EndTime, appointment.ID); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	userID := actor.ActorUserID()
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate,
		entity.AuditEntityAppointment, appointment.ID.String(), oldValue, converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s updated", appointment.ID)
	u.notifier.Notify(appointment, service.EventAppointmentUpdated)

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel is the lifecycle transition to CANCELLED
func (u *bookingUsecase) Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.lifecycle.Cancel(ctx, actor, appointmentID)
}

func (u *bookingUsecase) GetAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
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

	return converter.AppointmentToResponse(appointment), nil
}

// ListAppointments returns the appointments visible to the actor, optionally
// narrowed to one day and one status.
func (u *bookingUsecase) ListAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{}
	switch a := actor.(type) {
	case entity.PatientActor:
		filter.PatientID = &a.PatientID
	case entity.CenterStaffActor:
		filter.CenterID = &a.CenterID
	case entity.PractitionerActor:
		filter.PractitionerID = &a.PractitionerID
	default:
		return nil, ErrForbiddenActor
	}

	if query != nil {
		if query.Date != "" {
			day, err := time.ParseInLocation(dateLayout, query.Date, u.rules.Hours.Location)
			if err != nil {
				return nil, ErrInvalidDate
			}
			from, to := u.rules.Hours.Day(day)
			filter.From = &from
			filter.To = &to
		}
		filter.Status = entity.AppointmentStatus(query.Status)
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// authorizeBooking dispatches the linkage rules on the actor variant.
// Patients are held to their resolved linkage; center staff to pairs actively
// linked to their own center.
func (u *bookingUsecase) authorizeBooking(ctx context.Context, actor entity.Actor, patientID, practitionerID, centerID uuid.UUID) error {
	switch a := actor.(type) {
	case entity.PatientActor:
		if patientID != a.PatientID {
			return fmt.Errorf("%w: patients may only book for themselves", ErrUnauthorizedLinkage)
		}
		linkage, err := u.linkageResolver.Resolve(ctx, a.PatientID)
		if err != nil {
			return err
		}
		if !linkage.Allows(practitionerID, centerID) {
			return ErrUnauthorizedLinkage
		}
		return nil

	case entity.CenterStaffActor:
		if centerID != a.CenterID {
			return fmt.Errorf("%w: center %s is not your center", ErrUnauthorizedLinkage, centerID)
		}
		return u.checkCenterMembership(u.db.WithContext(ctx), centerID, practitionerID, patientID)

	default:
		return ErrForbiddenActor
	}
}

func (u *bookingUsecase) checkCenterMembership(db *gorm.DB, centerID, practitionerID, patientID uuid.UUID) error {
	practitionerLink, err := u.centerLinkRepo.FindPractitionerLink(db, centerID, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner link: %+v", err)
		return err
	}
	if practitionerLink == nil || !practitionerLink.IsActive {
		return fmt.Errorf("%w: practitioner %s is not linked to center %s", ErrUnauthorizedLinkage, practitionerID, centerID)
	}

	practitioner, err := u.practitionerRepo.FindByID(db, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return err
	}
	if practitioner == nil || !practitioner.IsActive {
		return fmt.Errorf("%w: practitioner %s is not active", ErrUnauthorizedLinkage, practitionerID)
	}

	patientLink, err := u.centerLinkRepo.FindPatientLink(db, centerID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient link: %+v", err)
		return err
	}
	if patientLink == nil || !patientLink.IsActive {
		return fmt.Errorf("%w: patient %s is not linked to center %s", ErrUnauthorizedLinkage, patientID, centerID)
	}

	return nil
}

func (u *bookingUsecase) validateTimeRange(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidTimeRange)
	}
	if _, dayEnd := u.rules.Hours.Day(start); end.After(dayEnd) {
		return fmt.Errorf("%w: appointment must start and end on the same day", ErrInvalidTimeRange)
	}
	if !u.rules.Hours.Contains(start, end) {
		return fmt.Errorf("%w: appointment is outside working hours", ErrInvalidTimeRange)
	}
	if start.Before(now) {
		return fmt.Errorf("%w: appointment is in the past", ErrInvalidTimeRange)
	}
	return nil
}

// reserve serializes bookings of one practitioner on the practitioner row and
// re-reads its appointments under that lock.
func (u *bookingUsecase) reserve(tx *gorm.DB, practitionerID uuid.UUID, start, end time.Time, excludeID uuid.UUID) error {
	practitioner, err := u.practitionerRepo.LockByID(tx, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to lock practitioner %s: %+v", practitionerID, err)
		return err
	}
	if practitioner == nil || !practitioner.IsActive {
		return ErrPractitionerNotFound
	}

	overlapping, err := u.appointmentRepo.FindOverlapping(tx, practitionerID, start, end, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check conflicts for practitioner %s: %+v", practitionerID, err)
		return err
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("%w: overlaps appointment %s", ErrSlotConflict, overlapping[0].ID)
	}
	return nil
}

func checkEditable(actor entity.Actor, appointment *entity.Appointment) error {
	if !actorOwns(actor, appointment) {
		return ErrAppointmentNotOwned
	}
	if !appointment.IsEditable() {
		return fmt.Errorf("%w: %s appointments cannot be edited", ErrInvalidTransition, appointment.Status)
	}
	return nil
}

// actorOwns reports whether the appointment falls inside the actor's scope
func actorOwns(actor entity.Actor, appointment *entity.Appointment) bool {
	switch a := actor.(type) {
	case entity.PatientActor:
		return appointment.PatientID == a.PatientID
	case entity.CenterStaffActor:
		return appointment.CenterID == a.CenterID
	case entity.PractitionerActor:
		return appointment.PractitionerID == a.PractitionerID
	}
	return false
}

// isExclusionViolation checks if the error is a PostgreSQL exclusion
// constraint violation (SQLSTATE 23P01), raised by the appointments overlap guard
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
