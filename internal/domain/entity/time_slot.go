package entity

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidWorkingHours = errors.New("invalid working hours")

// TimeSlot is a bookable [StartTime, EndTime) interval
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) before(o Clock) bool {
	return c.Hour < o.Hour || (c.Hour == o.Hour && c.Minute < o.Minute)
}

// WorkingHours is a daily opening window in wall-clock times of Location.
// Boundaries are built per calendar day, so DST shifts keep 09:00 at 09:00.
type WorkingHours struct {
	Start    Clock
	End      Clock
	Location *time.Location
}

// ParseWorkingHours builds WorkingHours from "HH:MM" strings
func ParseWorkingHours(start, end string, loc *time.Location) (WorkingHours, error) {
	s, err := parseClock(start)
	if err != nil {
		return WorkingHours{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return WorkingHours{}, err
	}
	if !s.before(e) {
		return WorkingHours{}, fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, start, end)
	}
	if loc == nil {
		loc = time.UTC
	}
	return WorkingHours{Start: s, End: e, Location: loc}, nil
}

func parseClock(v string) (Clock, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidWorkingHours, v)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Day returns the calendar day containing t as a [start, end) pair in the
// working-hours location.
func (w WorkingHours) Day(t time.Time) (time.Time, time.Time) {
	local := t.In(w.Location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.Location)
	return start, start.AddDate(0, 0, 1)
}

// Window returns the opening and closing instants on the day containing date
func (w WorkingHours) Window(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(w.Location).Date()
	open := time.Date(y, m, d, w.Start.Hour, w.Start.Minute, 0, 0, w.Location)
	closing := time.Date(y, m, d, w.End.Hour, w.End.Minute, 0, 0, w.Location)
	return open, closing
}

// Contains reports whether [start, end) lies inside the opening window of the
// day start falls on.
func (w WorkingHours) Contains(start, end time.Time) bool {
	open, closing := w.Window(start)
	return !start.Before(open) && !end.After(closing)
}

// Tile splits the opening window of date into consecutive slots of length d.
// A trailing remainder shorter than d is dropped.
func (w WorkingHours) Tile(date time.Time, d time.Duration) []TimeSlot {
	if d <= 0 {
		return nil
	}
	open, closing := w.Window(date)
	var slots []TimeSlot
	for start := open; !start.Add(d).After(closing); start = start.Add(d) {
		slots = append(slots, TimeSlot{StartTime: start, EndTime: start.Add(d)})
	}
	return slots
}

// FreeSlots removes candidates that overlap any busy appointment or that
// start before now, and returns the rest in chronological order.
func FreeSlots(candidates []TimeSlot, busy []Appointment, now time.Time) []TimeSlot {
	free := make([]TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if slot.StartTime.Before(now) {
			continue
		}
		taken := false
		for i := range busy {
			if busy[i].Status == AppointmentStatusCancelled {
				continue
			}
			if busy[i].Overlaps(slot.StartTime, slot.EndTime) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		return free[i].StartTime.Before(free[j].StartTime)
	})
	return free
}
