package entity

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("invalid appointment status transition")

// transitions lists the allowed edges. Terminal states have no entry.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
	},
}

// IsTerminal reports whether s is COMPLETED, CANCELLED or NO_SHOW
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the edge from -> to exists, ignoring time rules
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition validates from -> to for an appointment spanning [start, end)
// evaluated at now. COMPLETED needs the session to have started; NO_SHOW needs
// its end to have passed.
func CheckTransition(from, to AppointmentStatus, start, end, now time.Time) error {
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	switch to {
	case AppointmentStatusCompleted:
		if now.Before(start) {
			return fmt.Errorf("%w: cannot complete before the appointment starts", ErrInvalidTransition)
		}
	case AppointmentStatusNoShow:
		if now.Before(end) {
			return fmt.Errorf("%w: cannot mark no-show before the appointment ends", ErrInvalidTransition)
		}
	}
	return nil
}
