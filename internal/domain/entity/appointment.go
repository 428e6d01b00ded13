package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentStatusConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled  AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow     AppointmentStatus = "NO_SHOW"
)

// AppointmentType is the delivery channel of a session
type AppointmentType string

const (
	AppointmentTypeInPerson  AppointmentType = "IN_PERSON"
	AppointmentTypeVideoCall AppointmentType = "VIDEO_CALL"
	AppointmentTypePhone     AppointmentType = "PHONE"
)

// Appointment is a booked session between a patient and a practitioner.
// Rows are never deleted, cancellation is a status change.
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"center_id"`
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_practitioner_time" json:"practitioner_id"`
	Title          string            `gorm:"type:varchar(255);not null" json:"title"`
	Description    *string           `gorm:"type:text" json:"description,omitempty"`
	StartTime      time.Time         `gorm:"not null;index:idx_appointments_practitioner_time" json:"start_time"`
	EndTime        time.Time         `gorm:"not null" json:"end_time"`
	Type           AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes          *string           `gorm:"type:text" json:"notes,omitempty"`
	MeetingURL     *string           `gorm:"type:text" json:"meeting_url,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeSave stores instants in UTC so range comparisons are consistent
// across drivers.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	return nil
}

// IsTerminal reports whether no further transition is possible
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsEditable reports whether time, practitioner or patient may still change
func (a *Appointment) IsEditable() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// Overlaps uses half-open [StartTime, EndTime) semantics
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return Overlaps(a.StartTime, a.EndTime, start, end)
}

// Transition moves the appointment to target if the lifecycle allows it at now.
// The appointment is left untouched on error.
func (a *Appointment) Transition(target AppointmentStatus, now time.Time) error {
	if err := CheckTransition(a.Status, target, a.StartTime, a.EndTime, now); err != nil {
		return err
	}
	a.Status = target
	return nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
