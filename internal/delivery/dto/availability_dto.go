package dto

import (
	"time"

	"github.com/google/uuid"
)

type TimeSlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type AvailabilityResponse struct {
	PractitionerID uuid.UUID          `json:"practitionerId"`
	Date           string             `json:"date"`
	Slots          []TimeSlotResponse `json:"slots"`
}
