package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/testutil"

	"github.com/google/uuid"
)

func TestAvailableSlotsExcludesBookedHour(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)
	testutil.CreateAppointment(t, h.db, c.center, c.patient, c.practitioner, at(10, 0), at(11, 0), entity.AppointmentStatusScheduled)

	got, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(got.Slots) != 7 {
		t.Fatalf("slots = %d, want 7", len(got.Slots))
	}

	has := func(start time.Time) bool {
		for _, s := range got.Slots {
			if s.StartTime.Equal(start) {
				return true
			}
		}
		return false
	}
	if has(at(10, 0)) {
		t.Error("10:00 slot must be excluded")
	}
	if !has(at(9, 0)) || !has(at(11, 0)) {
		t.Error("09:00 and 11:00 slots must be offered")
	}
	for i := 1; i < len(got.Slots); i++ {
		if !got.Slots[i-1].StartTime.Before(got.Slots[i].StartTime) {
			t.Fatalf("slots not chronological at %d", i)
		}
	}
}

func TestAvailableSlotsNeverOverlapBusyIntervals(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)

	busy := []struct{ start, end time.Time }{
		{at(9, 30), at(10, 15)},
		{at(12, 0), at(12, 30)},
		{at(13, 45), at(15, 10)},
		{at(16, 59), at(17, 30)},
	}
	for _, b := range busy {
		testutil.CreateAppointment(t, h.db, c.center, c.patient, c.practitioner, b.start, b.end, entity.AppointmentStatusConfirmed)
	}
	testutil.CreateAppointment(t, h.db, c.center, c.patient, c.practitioner, at(11, 0), at(12, 0), entity.AppointmentStatusCancelled)

	got, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	for _, s := range got.Slots {
		for _, b := range busy {
			if entity.Overlaps(s.StartTime, s.EndTime, b.start, b.end) {
				t.Errorf("slot %s-%s overlaps busy %s-%s", s.StartTime.Format("15:04"), s.EndTime.Format("15:04"),
					b.start.Format("15:04"), b.end.Format("15:04"))
			}
		}
	}

	// 11:00 is free again because its only appointment was cancelled
	want := []time.Time{at(11, 0)}
	var starts []time.Time
	for _, s := range got.Slots {
		starts = append(starts, s.StartTime)
	}
	if !reflect.DeepEqual(starts, want) {
		t.Errorf("starts = %v, want %v", starts, want)
	}
}

func TestAvailableSlotsDropsPastStarts(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)
	h.setNow(at(12, 30))

	today, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots today: %v", err)
	}
	if len(today.Slots) != 4 || !today.Slots[0].StartTime.Equal(at(13, 0)) {
		t.Errorf("today slots = %+v, want 13:00..16:00", today.Slots)
	}

	past, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-09")
	if err != nil {
		t.Fatalf("AvailableSlots past: %v", err)
	}
	if len(past.Slots) != 0 {
		t.Errorf("past date slots = %d, want 0", len(past.Slots))
	}
}

func TestAvailableSlotsIsDeterministic(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)
	testutil.CreateAppointment(t, h.db, c.center, c.patient, c.practitioner, at(14, 0), at(15, 0), entity.AppointmentStatusScheduled)

	first, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	second, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "2030-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calls returned different slots")
	}
}

func TestAvailableSlotsErrors(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)
	retired := testutil.CreatePractitioner(t, h.db, "Rex", "Physiotherapy", false)

	if _, err := h.availability.AvailableSlots(context.Background(), c.practitioner.ID, "10/06/2030"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
	if _, err := h.availability.AvailableSlots(context.Background(), uuid.New(), "2030-06-10"); !errors.Is(err, ErrPractitionerNotFound) {
		t.Errorf("unknown practitioner err = %v", err)
	}
	if _, err := h.availability.AvailableSlots(context.Background(), retired.ID, "2030-06-10"); !errors.Is(err, ErrPractitionerNotFound) {
		t.Errorf("inactive practitioner err = %v", err)
	}
}
