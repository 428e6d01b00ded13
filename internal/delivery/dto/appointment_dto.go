package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateAppointmentRequest is the booking payload. Instants are RFC 3339.
type CreateAppointmentRequest struct {
	Title          string    `json:"title" validate:"required,max=255"`
	Description    *string   `json:"description" validate:"omitempty"`
	PatientID      uuid.UUID `json:"patientId" validate:"required"`
	PractitionerID uuid.UUID `json:"practitionerId" validate:"required"`
	CenterID       uuid.UUID `json:"centerId" validate:"required"`
	StartTime      time.Time `json:"startTime" validate:"required"`
	EndTime        time.Time `json:"endTime" validate:"required"`
	Type           string    `json:"type" validate:"required,oneof=IN_PERSON VIDEO_CALL PHONE"`
	Notes          *string   `json:"notes" validate:"omitempty"`
	MeetingURL     *string   `json:"meetingUrl" validate:"omitempty,url"`
}

// UpdateAppointmentRequest replaces every editable field of an appointment
type UpdateAppointmentRequest CreateAppointmentRequest

// AppointmentListQuery narrows GET /appointments; Date is YYYY-MM-DD.
type AppointmentListQuery struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	CenterID       uuid.UUID `json:"centerId"`
	PatientID      uuid.UUID `json:"patientId"`
	PractitionerID uuid.UUID `json:"practitionerId"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	MeetingURL     *string   `json:"meetingUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"userId,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
