package usecase

import (
	"context"
	"errors"
	"testing"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/testutil"

	"github.com/google/uuid"
)

func TestAggregateCountsDistinctPatientsAndPlans(t *testing.T) {
	h := newHarness(t)
	p := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", true)
	other := testutil.CreatePractitioner(t, h.db, "Otto", "Physiotherapy", true)

	twoPlans := testutil.CreatePatient(t, h.db, "Two Plans", nil)
	expired := testutil.CreatePatient(t, h.db, "Expired", nil)
	finished := testutil.CreatePatient(t, h.db, "Finished", nil)
	endsNow := testutil.CreatePatient(t, h.db, "Ends Now", nil)

	future := baseNow.AddDate(0, 1, 0)
	testutil.CreatePrescription(t, h.db, twoPlans, p, entity.PrescriptionStatusActive, future)
	testutil.CreatePrescription(t, h.db, twoPlans, p, entity.PrescriptionStatusActive, future.AddDate(0, 0, 7))
	testutil.CreatePrescription(t, h.db, expired, p, entity.PrescriptionStatusActive, baseNow.AddDate(0, 0, -1))
	testutil.CreatePrescription(t, h.db, finished, p, entity.PrescriptionStatusCompleted, future)
	testutil.CreatePrescription(t, h.db, endsNow, p, entity.PrescriptionStatusActive, baseNow)
	testutil.CreatePrescription(t, h.db, twoPlans, other, entity.PrescriptionStatusActive, future)

	got, err := h.workload.Aggregate(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if got.CurrentPatients != 2 {
		t.Errorf("currentPatients = %d, want 2", got.CurrentPatients)
	}
	if got.ActivePlans != 3 {
		t.Errorf("activePlans = %d, want 3", got.ActivePlans)
	}
	if got.TotalPatientsServed != 4 {
		t.Errorf("totalPatientsServed = %d, want 4", got.TotalPatientsServed)
	}
	if got.CurrentPatients > got.ActivePlans {
		t.Errorf("currentPatients %d exceeds activePlans %d", got.CurrentPatients, got.ActivePlans)
	}
}

func TestAggregateWithoutPrescriptions(t *testing.T) {
	h := newHarness(t)
	p := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", true)

	got, err := h.workload.Aggregate(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got.CurrentPatients != 0 || got.ActivePlans != 0 || got.TotalPatientsServed != 0 {
		t.Errorf("workload = %+v, want zeros", got)
	}

	if _, err := h.workload.Aggregate(context.Background(), uuid.New()); !errors.Is(err, ErrPractitionerNotFound) {
		t.Errorf("err = %v, want ErrPractitionerNotFound", err)
	}
}

func TestListPractitionersAnnotatesWorkload(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	center := testutil.CreateCenter(t, h.db, "North")
	physio := testutil.CreatePractitioner(t, h.db, "Ava Physio", "Physiotherapy", true)
	ortho := testutil.CreatePractitioner(t, h.db, "Bo Ortho", "Orthopedics", true)
	retired := testutil.CreatePractitioner(t, h.db, "Cy Retired", "Physiotherapy", false)
	unlinked := testutil.CreatePractitioner(t, h.db, "Di Unlinked", "Physiotherapy", true)
	testutil.LinkPractitioner(t, h.db, center, physio, true)
	testutil.LinkPractitioner(t, h.db, center, ortho, true)
	testutil.LinkPractitioner(t, h.db, center, retired, true)
	testutil.LinkPractitioner(t, h.db, center, unlinked, false)

	patient := testutil.CreatePatient(t, h.db, "Pat", nil)
	testutil.CreatePrescription(t, h.db, patient, physio, entity.PrescriptionStatusActive, baseNow.AddDate(0, 1, 0))

	list, err := h.workload.ListPractitioners(ctx, center.ID, nil)
	if err != nil {
		t.Fatalf("ListPractitioners: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("total = %d, want 2", list.Total)
	}
	if list.Practitioners[0].ID != physio.ID || list.Practitioners[1].ID != ortho.ID {
		t.Errorf("order = %s, %s; want by name", list.Practitioners[0].FullName, list.Practitioners[1].FullName)
	}
	if w := list.Practitioners[0].Workload; w == nil || w.CurrentPatients != 1 || w.ActivePlans != 1 {
		t.Errorf("physio workload = %+v", w)
	}
	if w := list.Practitioners[1].Workload; w == nil || w.TotalPatientsServed != 0 {
		t.Errorf("ortho workload = %+v", w)
	}

	filtered, err := h.workload.ListPractitioners(ctx, center.ID, &entity.PractitionerFilter{Specialization: "ORTHO"})
	if err != nil {
		t.Fatalf("ListPractitioners filtered: %v", err)
	}
	if filtered.Total != 1 || filtered.Practitioners[0].ID != ortho.ID {
		t.Errorf("filtered = %+v", filtered.Practitioners)
	}

	if _, err := h.workload.ListPractitioners(ctx, uuid.New(), nil); !errors.Is(err, ErrCenterNotFound) {
		t.Errorf("err = %v, want ErrCenterNotFound", err)
	}
}
