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
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrCenterNotFound       = errors.New("center not found")
)

type WorkloadUsecase interface {
	Aggregate(ctx context.Context, practitionerID uuid.UUID) (*dto.WorkloadResponse, error)
	// ListPractitioners returns the center's bookable practitioners, each
	// annotated with its workload.
	ListPractitioners(ctx context.Context, centerID uuid.UUID, filter *entity.PractitionerFilter) (*dto.PractitionerListResponse, error)
}

type workloadUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	practitionerRepo repository.PractitionerRepository
	prescriptionRepo repository.PrescriptionRepository
	centerRepo       repository.CenterRepository
	concurrency      int
	now              func() time.Time
}

func NewWorkloadUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	practitionerRepo repository.PractitionerRepository,
	prescriptionRepo repository.PrescriptionRepository,
	centerRepo repository.CenterRepository,
	concurrency int,
	now func() time.Time,
) WorkloadUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &workloadUsecase{
		db:               db,
		log:              log,
		practitionerRepo: practitionerRepo,
		prescriptionRepo: prescriptionRepo,
		centerRepo:       centerRepo,
		concurrency:      concurrency,
		now:              now,
	}
}

func (u *workloadUsecase) Aggregate(ctx context.Context, practitionerID uuid.UUID) (*dto.WorkloadResponse, error) {
	now := u.now()
	db := u.db.WithContext(ctx)

	practitioner, err := u.practitionerRepo.FindByID(db, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	workload, err := u.prescriptionRepo.AggregateWorkload(db, practitionerID, now)
	if err != nil {
		u.log.Warnf("Failed to aggregate workload for practitioner %s: %+v", practitionerID, err)
		return nil, err
	}

	return converter.WorkloadToResponse(practitionerID, workload), nil
}

func (u *workloadUsecase) ListPractitioners(ctx context.Context, centerID uuid.UUID, filter *entity.PractitionerFilter) (*dto.PractitionerListResponse, error) {
	now := u.now()
	db := u.db.WithContext(ctx)

	center, err := u.centerRepo.FindByID(db, centerID)
	if err != nil {
		u.log.Warnf("Failed to find center %s: %+v", centerID, err)
		return nil, err
	}
	if center == nil {
		return nil, ErrCenterNotFound
	}

	practitioners, err := u.practitionerRepo.FindActiveByCenter(db, centerID, filter)
	if err != nil {
		u.log.Warnf("Failed to list practitioners for center %s: %+v", centerID, err)
		return nil, err
	}

	// Every practitioner is aggregated against the same now
	workloads := make([]*entity.Workload, len(practitioners))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i := range practitioners {
		i := i
		g.Go(func() error {
			workload, err := u.prescriptionRepo.AggregateWorkload(u.db.WithContext(gctx), practitioners[i].ID, now)
			if err != nil {
				return err
			}
			workloads[i] = workload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to aggregate workloads for center %s: %+v", centerID, err)
		return nil, err
	}

	responses := make([]dto.PractitionerResponse, len(practitioners))
	for i := range practitioners {
		responses[i] = *converter.PractitionerToResponse(&practitioners[i], workloads[i])
	}

	return &dto.PractitionerListResponse{
		CenterID:      centerID,
		Practitioners: responses,
		Total:         len(responses),
	}, nil
}
