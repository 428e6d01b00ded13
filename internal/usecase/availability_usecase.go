package usecase

import (
	"context"
	"errors"
	"time"

	"rehab-scheduling/internal/converter"
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// SchedulingRules is the clinic-wide booking grid
type SchedulingRules struct {
	Hours        entity.WorkingHours
	SlotDuration time.Duration
}

type AvailabilityUsecase interface {
	// AvailableSlots lists free slots of the practitioner on date (YYYY-MM-DD,
	// read in the working-hours location).
	AvailableSlots(ctx context.Context, practitionerID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	practitionerRepo repository.PractitionerRepository
	appointmentRepo  repository.AppointmentRepository
	rules            SchedulingRules
	now              func() time.Time
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	practitionerRepo repository.PractitionerRepository,
	appointmentRepo repository.AppointmentRepository,
	rules SchedulingRules,
	now func() time.Time,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		practitionerRepo: practitionerRepo,
		appointmentRepo:  appointmentRepo,
		rules:            rules,
		now:              now,
	}
}

func (u *availabilityUsecase) AvailableSlots(ctx context.Context, practitionerID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	now := u.now()

	day, err := time.ParseInLocation(dateLayout, date, u.rules.Hours.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}

	db := u.db.WithContext(ctx)

	practitioner, err := u.practitionerRepo.FindByID(db, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return nil, err
	}
	if practitioner == nil || !practitioner.IsActive {
		return nil, ErrPractitionerNotFound
	}

	dayStart, dayEnd := u.rules.Hours.Day(day)
	busy, err := u.appointmentRepo.FindOverlapping(db, practitionerID, dayStart, dayEnd, uuid.Nil)
	if err != nil {
		u.log.Warnf("Failed to find appointments of practitioner %s on %s: %+v", practitionerID, date, err)
		return nil, err
	}

	candidates := u.rules.Hours.Tile(day, u.rules.SlotDuration)
	free := entity.FreeSlots(candidates, busy, now)

	return &dto.AvailabilityResponse{
		PractitionerID: practitionerID,
		Date:           date,
		Slots:          converter.TimeSlotsToResponses(free),
	}, nil
}
