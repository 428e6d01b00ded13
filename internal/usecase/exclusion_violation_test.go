package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsExclusionViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion constraint", &pgconn.PgError{Code: "23P01"}, true},
		{"wrapped exclusion constraint", fmt.Errorf("insert appointment: %w", &pgconn.PgError{Code: "23P01"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isExclusionViolation(tt.err); got != tt.want {
				t.Errorf("isExclusionViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBookMapsExclusionViolationToSlotConflict(t *testing.T) {
	h := newHarness(t)
	c := h.seedClinic(t)

	// Stand in for the Postgres overlap constraint rejecting the insert.
	err := h.db.Callback().Create().Before("gorm:create").Register("test:exclusion_violation", func(db *gorm.DB) {
		if db.Statement.Table == "appointments" {
			db.AddError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = h.booking.Book(context.Background(), c.patientActor(), bookingRequest(c, at(10, 0), at(11, 0)))
	if !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("err = %v, want ErrSlotConflict", err)
	}
	if n := countAppointments(t, h); n != 0 {
		t.Errorf("appointments = %d, want 0", n)
	}
	if events := h.notifier.Events(); len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
}
