package service

import (
	"context"
	"testing"

	"rehab-scheduling/internal/repository"
	"rehab-scheduling/internal/testutil"

	"github.com/google/uuid"
)

func TestAuditServiceFollowsCallerTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	log, _ := testutil.NewLogger()
	audit := NewAuditService(db, log, repository.NewAuditLogRepository())
	ctx := context.Background()
	userID := uuid.New()
	appointmentID := uuid.New().String()

	tx := db.Begin()
	if err := audit.LogCreate(ctx, tx, &userID, "APPOINTMENT_BOOKED", "appointment", appointmentID, map[string]string{"status": "SCHEDULED"}); err != nil {
		t.Fatalf("LogCreate: %v", err)
	}
	tx.Rollback()

	history, err := audit.History(ctx, "appointment", appointmentID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("rolled back audit row persisted: %+v", history)
	}

	tx = db.Begin()
	if err := audit.LogCreate(ctx, tx, &userID, "APPOINTMENT_BOOKED", "appointment", appointmentID, map[string]string{"status": "SCHEDULED"}); err != nil {
		t.Fatalf("LogCreate: %v", err)
	}
	if err := audit.LogUpdate(ctx, tx, &userID, "APPOINTMENT_CONFIRMED", "appointment", appointmentID, "SCHEDULED", "CONFIRMED"); err != nil {
		t.Fatalf("LogUpdate: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}

	history, err = audit.History(ctx, "appointment", appointmentID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d rows, want 2", len(history))
	}
	if history[0].Action != "APPOINTMENT_BOOKED" || history[1].Action != "APPOINTMENT_CONFIRMED" {
		t.Errorf("actions = %s, %s", history[0].Action, history[1].Action)
	}
	if history[1].Metadata["new_value"] != "CONFIRMED" {
		t.Errorf("metadata = %+v", history[1].Metadata)
	}
}
