package usecase

import (
	"context"
	"errors"
	"testing"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestResolveSelectableListsOnlyActiveLinks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	north := testutil.CreateCenter(t, h.db, "North")
	south := testutil.CreateCenter(t, h.db, "South")
	closed := testutil.CreateCenter(t, h.db, "Closed")

	active := testutil.CreatePractitioner(t, h.db, "Ava Active", "Physiotherapy", true)
	unlinked := testutil.CreatePractitioner(t, h.db, "Una Unlinked", "Physiotherapy", true)
	retired := testutil.CreatePractitioner(t, h.db, "Rex Retired", "Physiotherapy", false)
	testutil.LinkPractitioner(t, h.db, north, active, true)
	testutil.LinkPractitioner(t, h.db, north, unlinked, false)
	testutil.LinkPractitioner(t, h.db, north, retired, true)
	testutil.LinkPractitioner(t, h.db, closed, active, true)

	patient := testutil.CreatePatient(t, h.db, "Pat", nil)
	testutil.LinkPatient(t, h.db, north, patient, true)
	testutil.LinkPatient(t, h.db, south, patient, true)
	testutil.LinkPatient(t, h.db, closed, patient, false)

	result, err := h.linkage.Resolve(ctx, patient.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Mode != entity.LinkageModeSelectable {
		t.Fatalf("mode = %s, want SELECTABLE", result.Mode)
	}
	if len(result.Centers) != 2 {
		t.Fatalf("centers = %d, want 2", len(result.Centers))
	}

	byCenter := map[uuid.UUID][]entity.Practitioner{}
	for _, c := range result.Centers {
		byCenter[c.Center.ID] = c.Practitioners
	}
	if _, ok := byCenter[closed.ID]; ok {
		t.Error("inactive patient link must hide the center")
	}
	if got := byCenter[north.ID]; len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("north practitioners = %+v, want only %s", got, active.FullName)
	}
	if got := byCenter[south.ID]; len(got) != 0 {
		t.Errorf("south practitioners = %+v, want none", got)
	}

	if !result.Allows(active.ID, north.ID) {
		t.Error("expected active practitioner at north to be allowed")
	}
	if result.Allows(active.ID, closed.ID) || result.Allows(unlinked.ID, north.ID) || result.Allows(retired.ID, north.ID) {
		t.Error("inactive links or practitioners must not be allowed")
	}
}

func TestResolveFixedPicksTheSharedCenter(t *testing.T) {
	h := newHarness(t)

	north := testutil.CreateCenter(t, h.db, "North")
	south := testutil.CreateCenter(t, h.db, "South")
	assigned := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", true)
	other := testutil.CreatePractitioner(t, h.db, "Otto", "Physiotherapy", true)
	testutil.LinkPractitioner(t, h.db, north, assigned, true)
	testutil.LinkPractitioner(t, h.db, south, other, true)

	patient := testutil.CreatePatient(t, h.db, "Pat", &assigned.ID)
	testutil.LinkPatient(t, h.db, north, patient, true)
	testutil.LinkPatient(t, h.db, south, patient, true)

	result, err := h.linkage.Resolve(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Mode != entity.LinkageModeFixed {
		t.Fatalf("mode = %s, want FIXED", result.Mode)
	}
	if result.Practitioner.ID != assigned.ID || result.Center.ID != north.ID {
		t.Errorf("resolved %s at %s, want %s at %s", result.Practitioner.ID, result.Center.ID, assigned.ID, north.ID)
	}
	if result.Allows(other.ID, south.ID) {
		t.Error("fixed patient must not be allowed another practitioner")
	}
}

func TestResolveFixedInconsistentLinkage(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, h *harness) uuid.UUID
	}{
		{
			name: "no shared center",
			setup: func(t *testing.T, h *harness) uuid.UUID {
				north := testutil.CreateCenter(t, h.db, "North")
				south := testutil.CreateCenter(t, h.db, "South")
				p := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", true)
				testutil.LinkPractitioner(t, h.db, south, p, true)
				patient := testutil.CreatePatient(t, h.db, "Pat", &p.ID)
				testutil.LinkPatient(t, h.db, north, patient, true)
				return patient.ID
			},
		},
		{
			name: "two shared centers",
			setup: func(t *testing.T, h *harness) uuid.UUID {
				north := testutil.CreateCenter(t, h.db, "North")
				south := testutil.CreateCenter(t, h.db, "South")
				p := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", true)
				testutil.LinkPractitioner(t, h.db, north, p, true)
				testutil.LinkPractitioner(t, h.db, south, p, true)
				patient := testutil.CreatePatient(t, h.db, "Pat", &p.ID)
				testutil.LinkPatient(t, h.db, north, patient, true)
				testutil.LinkPatient(t, h.db, south, patient, true)
				return patient.ID
			},
		},
		{
			name: "inactive assigned practitioner",
			setup: func(t *testing.T, h *harness) uuid.UUID {
				north := testutil.CreateCenter(t, h.db, "North")
				p := testutil.CreatePractitioner(t, h.db, "Ava", "Physiotherapy", false)
				testutil.LinkPractitioner(t, h.db, north, p, true)
				patient := testutil.CreatePatient(t, h.db, "Pat", &p.ID)
				testutil.LinkPatient(t, h.db, north, patient, true)
				return patient.ID
			},
		},
		{
			name: "missing assigned practitioner",
			setup: func(t *testing.T, h *harness) uuid.UUID {
				north := testutil.CreateCenter(t, h.db, "North")
				ghost := uuid.New()
				patient := testutil.CreatePatient(t, h.db, "Pat", &ghost)
				testutil.LinkPatient(t, h.db, north, patient, true)
				return patient.ID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			patientID := tt.setup(t, h)

			_, err := h.linkage.Resolve(context.Background(), patientID)
			if !errors.Is(err, ErrInconsistentLinkage) {
				t.Fatalf("err = %v, want ErrInconsistentLinkage", err)
			}
			if !hasLevel(h.hook, logrus.ErrorLevel) {
				t.Error("inconsistent linkage must be logged at error level")
			}
		})
	}
}

func TestResolveUnknownPatient(t *testing.T) {
	h := newHarness(t)
	if _, err := h.linkage.Resolve(context.Background(), uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestGetLinkageResponse(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)

	resp, err := h.linkage.GetLinkage(context.Background(), c.patient.ID)
	if err != nil {
		t.Fatalf("GetLinkage: %v", err)
	}
	if resp.Mode != string(entity.LinkageModeSelectable) || len(resp.Centers) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if len(resp.Centers[0].Practitioners) != 1 || resp.Centers[0].Practitioners[0].ID != c.practitioner.ID {
		t.Errorf("practitioners = %+v", resp.Centers[0].Practitioners)
	}
}
