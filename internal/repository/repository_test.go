package repository

import (
	"testing"
	"time"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/testutil"

	"github.com/google/uuid"
)

func clock(h, m int) time.Time {
	return time.Date(2030, 6, 10, h, m, 0, 0, time.UTC)
}

func TestFindOverlappingIsHalfOpen(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepository()

	center := testutil.CreateCenter(t, db, "North")
	practitioner := testutil.CreatePractitioner(t, db, "Dana", "Physiotherapy", true)
	patient := testutil.CreatePatient(t, db, "Sam", nil)
	booked := testutil.CreateAppointment(t, db, center, patient, practitioner, clock(10, 0), clock(11, 0), entity.AppointmentStatusConfirmed)
	testutil.CreateAppointment(t, db, center, patient, practitioner, clock(13, 0), clock(14, 0), entity.AppointmentStatusCancelled)

	tests := []struct {
		name     string
		from, to time.Time
		exclude  uuid.UUID
		want     int
	}{
		{"same interval", clock(10, 0), clock(11, 0), uuid.Nil, 1},
		{"partial overlap", clock(10, 30), clock(11, 30), uuid.Nil, 1},
		{"contained", clock(10, 15), clock(10, 45), uuid.Nil, 1},
		{"touching before", clock(9, 0), clock(10, 0), uuid.Nil, 0},
		{"touching after", clock(11, 0), clock(12, 0), uuid.Nil, 0},
		{"cancelled ignored", clock(13, 0), clock(14, 0), uuid.Nil, 0},
		{"excluding itself", clock(10, 30), clock(11, 30), booked.ID, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindOverlapping(db, practitioner.ID, tt.from, tt.to, tt.exclude)
			if err != nil {
				t.Fatalf("FindOverlapping: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d appointments, want %d", len(got), tt.want)
			}
		})
	}

	other := testutil.CreatePractitioner(t, db, "Otto", "Physiotherapy", true)
	got, err := repo.FindOverlapping(db, other.ID, clock(10, 0), clock(11, 0), uuid.Nil)
	if err != nil || len(got) != 0 {
		t.Errorf("other practitioner: %d, %v", len(got), err)
	}
}

func TestFindAllFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAppointmentRepository()

	center := testutil.CreateCenter(t, db, "North")
	practitioner := testutil.CreatePractitioner(t, db, "Dana", "Physiotherapy", true)
	sam := testutil.CreatePatient(t, db, "Sam", nil)
	kim := testutil.CreatePatient(t, db, "Kim", nil)
	testutil.CreateAppointment(t, db, center, sam, practitioner, clock(14, 0), clock(15, 0), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, center, kim, practitioner, clock(9, 0), clock(10, 0), entity.AppointmentStatusCompleted)
	testutil.CreateAppointment(t, db, center, sam, practitioner, clock(9, 0).AddDate(0, 0, 1), clock(10, 0).AddDate(0, 0, 1), entity.AppointmentStatusScheduled)

	from, to := clock(0, 0), clock(0, 0).AddDate(0, 0, 1)
	day, err := repo.FindAll(db, &entity.AppointmentFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(day) != 2 || !day[0].StartTime.Equal(clock(9, 0)) {
		t.Errorf("day listing = %+v", day)
	}

	samOnly, err := repo.FindAll(db, &entity.AppointmentFilter{PatientID: &sam.ID, Status: entity.AppointmentStatusScheduled})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(samOnly) != 2 {
		t.Errorf("patient listing = %d, want 2", len(samOnly))
	}
}

func TestFindActiveByCenterFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPractitionerRepository()

	center := testutil.CreateCenter(t, db, "North")
	dana := testutil.CreatePractitioner(t, db, "Dana Physio", "Physiotherapy", true)
	otto := testutil.CreatePractitioner(t, db, "Otto Speech", "Speech therapy", true)
	retired := testutil.CreatePractitioner(t, db, "Ret Physio", "Physiotherapy", false)
	away := testutil.CreatePractitioner(t, db, "Away Physio", "Physiotherapy", true)
	testutil.LinkPractitioner(t, db, center, dana, true)
	testutil.LinkPractitioner(t, db, center, otto, true)
	testutil.LinkPractitioner(t, db, center, retired, true)
	testutil.LinkPractitioner(t, db, center, away, false)

	all, err := repo.FindActiveByCenter(db, center.ID, nil)
	if err != nil {
		t.Fatalf("FindActiveByCenter: %v", err)
	}
	if len(all) != 2 || all[0].ID != dana.ID || all[1].ID != otto.ID {
		t.Errorf("all = %+v", all)
	}

	physio, err := repo.FindActiveByCenter(db, center.ID, &entity.PractitionerFilter{Specialization: "PHYSIO"})
	if err != nil {
		t.Fatalf("FindActiveByCenter: %v", err)
	}
	if len(physio) != 1 || physio[0].ID != dana.ID {
		t.Errorf("physio = %+v", physio)
	}

	byName, err := repo.FindActiveByCenter(db, center.ID, &entity.PractitionerFilter{Name: "otto"})
	if err != nil {
		t.Fatalf("FindActiveByCenter: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != otto.ID {
		t.Errorf("byName = %+v", byName)
	}
}

func TestAggregateWorkloadSingleSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPrescriptionRepository()
	now := clock(8, 0)

	practitioner := testutil.CreatePractitioner(t, db, "Dana", "Physiotherapy", true)
	sam := testutil.CreatePatient(t, db, "Sam", nil)
	kim := testutil.CreatePatient(t, db, "Kim", nil)
	lee := testutil.CreatePatient(t, db, "Lee", nil)

	testutil.CreatePrescription(t, db, sam, practitioner, entity.PrescriptionStatusActive, now.AddDate(0, 1, 0))
	testutil.CreatePrescription(t, db, sam, practitioner, entity.PrescriptionStatusActive, now)
	testutil.CreatePrescription(t, db, kim, practitioner, entity.PrescriptionStatusActive, now.AddDate(0, 0, -1))
	testutil.CreatePrescription(t, db, lee, practitioner, entity.PrescriptionStatusCompleted, now.AddDate(0, 1, 0))

	got, err := repo.AggregateWorkload(db, practitioner.ID, now)
	if err != nil {
		t.Fatalf("AggregateWorkload: %v", err)
	}
	want := entity.Workload{CurrentPatients: 1, ActivePlans: 2, TotalPatientsServed: 3}
	if *got != want {
		t.Errorf("workload = %+v, want %+v", *got, want)
	}
}

func TestUpsertPatientLinkKeepsRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCenterLinkRepository()

	center := testutil.CreateCenter(t, db, "North")
	patient := testutil.CreatePatient(t, db, "Sam", nil)

	first := &entity.CenterPatientLink{CenterID: center.ID, PatientID: patient.ID, IsActive: true, LinkedAt: clock(8, 0)}
	if err := repo.UpsertPatientLink(db, first); err != nil {
		t.Fatalf("UpsertPatientLink: %v", err)
	}

	affected, err := repo.DeactivatePatientLink(db, center.ID, patient.ID)
	if err != nil || affected != 1 {
		t.Fatalf("DeactivatePatientLink = %d, %v", affected, err)
	}
	if affected, _ := repo.DeactivatePatientLink(db, center.ID, patient.ID); affected != 0 {
		t.Errorf("second deactivate affected %d rows", affected)
	}

	again := &entity.CenterPatientLink{CenterID: center.ID, PatientID: patient.ID, IsActive: true, LinkedAt: clock(9, 0), Notes: "back"}
	if err := repo.UpsertPatientLink(db, again); err != nil {
		t.Fatalf("UpsertPatientLink: %v", err)
	}
	if again.ID != first.ID || !again.IsActive || again.Notes != "back" {
		t.Errorf("relinked = %+v, want row %s reactivated", again, first.ID)
	}

	links, err := repo.FindActivePatientLinks(db, patient.ID)
	if err != nil {
		t.Fatalf("FindActivePatientLinks: %v", err)
	}
	if len(links) != 1 || links[0].Center.Name != "North" {
		t.Errorf("links = %+v", links)
	}
}
