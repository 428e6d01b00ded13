package usecase

import (
	"sync"
	"testing"
	"time"

	"rehab-scheduling/internal/domain/entity"
	repoimpl "rehab-scheduling/internal/repository"
	"rehab-scheduling/internal/service"
	"rehab-scheduling/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"
)

// 2030-06-10 is a Monday
var baseNow = time.Date(2030, 6, 10, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2030, 6, 10, hour, minute, 0, 0, time.UTC)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(appointment *entity.Appointment, event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type harness struct {
	db       *gorm.DB
	log      *logrus.Logger
	hook     *test.Hook
	notifier *recordingNotifier

	mu  sync.Mutex
	now time.Time

	audit        service.AuditService
	linkage      LinkageResolverUsecase
	workload     WorkloadUsecase
	availability AvailabilityUsecase
	lifecycle    AppointmentLifecycleUsecase
	booking      BookingUsecase
	links        CenterLinkUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	log, hook := testutil.NewLogger()

	hours, err := entity.ParseWorkingHours("09:00", "17:00", time.UTC)
	if err != nil {
		t.Fatalf("working hours: %v", err)
	}
	rules := SchedulingRules{Hours: hours, SlotDuration: time.Hour}

	h := &harness{
		db:       db,
		log:      log,
		hook:     hook,
		notifier: &recordingNotifier{},
		now:      baseNow,
	}

	patientRepo := repoimpl.NewPatientRepository()
	practitionerRepo := repoimpl.NewPractitionerRepository()
	centerRepo := repoimpl.NewCenterRepository()
	centerLinkRepo := repoimpl.NewCenterLinkRepository()
	prescriptionRepo := repoimpl.NewPrescriptionRepository()
	appointmentRepo := repoimpl.NewAppointmentRepository()
	auditRepo := repoimpl.NewAuditLogRepository()

	h.audit = service.NewAuditService(db, log, auditRepo)
	h.linkage = NewLinkageResolverUsecase(db, log, patientRepo, practitionerRepo, centerLinkRepo)
	h.workload = NewWorkloadUsecase(db, log, practitionerRepo, prescriptionRepo, centerRepo, 2, h.clock)
	h.availability = NewAvailabilityUsecase(db, log, practitionerRepo, appointmentRepo, rules, h.clock)
	h.lifecycle = NewAppointmentLifecycleUsecase(db, log, appointmentRepo, h.audit, h.notifier, h.clock)
	h.booking = NewBookingUsecase(db, log, appointmentRepo, practitionerRepo, centerLinkRepo,
		h.linkage, h.lifecycle, h.audit, h.notifier, rules, h.clock)
	h.links = NewCenterLinkUsecase(db, log, centerRepo, centerLinkRepo, practitionerRepo, patientRepo, h.audit, h.clock)

	return h
}

func (h *harness) clock() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *harness) setNow(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
}

// clinic is one center with a patient and a practitioner linked to it
type clinic struct {
	center       *entity.Center
	patient      *entity.Patient
	practitioner *entity.Practitioner
}

func (h *harness) seedClinic(t *testing.T) clinic {
	t.Helper()
	center := testutil.CreateCenter(t, h.db, "North Rehab")
	practitioner := testutil.CreatePractitioner(t, h.db, "Dana Physio", "Physiotherapy", true)
	patient := testutil.CreatePatient(t, h.db, "Sam Patient", nil)
	testutil.LinkPractitioner(t, h.db, center, practitioner, true)
	testutil.LinkPatient(t, h.db, center, patient, true)
	return clinic{center: center, patient: patient, practitioner: practitioner}
}

func (c clinic) patientActor() entity.PatientActor {
	return entity.PatientActor{UserID: c.patient.ID, PatientID: c.patient.ID}
}

func (c clinic) staffActor() entity.CenterStaffActor {
	return entity.CenterStaffActor{UserID: c.center.ID, CenterID: c.center.ID}
}

func (c clinic) practitionerActor() entity.PractitionerActor {
	return entity.PractitionerActor{UserID: c.practitioner.ID, PractitionerID: c.practitioner.ID}
}

func hasLevel(hook *test.Hook, level logrus.Level) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			return true
		}
	}
	return false
}
