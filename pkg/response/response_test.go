package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "Invalid practitioner ID") }, http.StatusBadRequest, "Invalid practitioner ID"},
		{"bad request default", func(w http.ResponseWriter) { BadRequest(w, "") }, http.StatusBadRequest, "Bad request"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "Time slot is no longer available") }, http.StatusConflict, "Time slot is no longer available"},
		{"conflict default", func(w http.ResponseWriter) { Conflict(w, "") }, http.StatusConflict, "Conflict"},
		{"forbidden default", func(w http.ResponseWriter) { Forbidden(w, "") }, http.StatusForbidden, "Forbidden"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "Appointment not found") }, http.StatusNotFound, "Appointment not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
			var body Response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Message != tt.message {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestSuccessOmitsError(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Appointment booked successfully", map[string]string{"status": "SCHEDULED"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var raw map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["success"] != true {
		t.Errorf("success = %v", raw["success"])
	}
	if _, ok := raw["error"]; ok {
		t.Errorf("error key present: %v", raw)
	}
	if _, ok := raw["meta"]; ok {
		t.Errorf("meta key present: %v", raw)
	}
}
