package validator

import (
	"testing"
	"time"
)

type sampleRequest struct {
	PractitionerID string    `json:"practitionerId" validate:"required,uuid"`
	Type           string    `json:"type" validate:"required,oneof=IN_PERSON VIDEO_CALL PHONE"`
	Date           string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime      time.Time `json:"startTime" validate:"required"`
	EndTime        time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	err := v.Validate(&sampleRequest{
		PractitionerID: "not-a-uuid",
		Type:           "HOME_VISIT",
		Date:           "01/02/2030",
		StartTime:      start,
		EndTime:        start.Add(-time.Hour),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := v.FormatValidationErrors(err)
	for _, field := range []string{"practitionerId", "type", "date", "endTime"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %q in %v", field, errs)
		}
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	v := NewValidator()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	err := v.Validate(&sampleRequest{
		PractitionerID: "6f1c2a4e-1d2b-4c3d-9e8f-0a1b2c3d4e5f",
		Type:           "VIDEO_CALL",
		Date:           "2030-01-01",
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
