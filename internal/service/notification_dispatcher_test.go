package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func testAppointment() *entity.Appointment {
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	return &entity.Appointment{
		ID:             uuid.New(),
		CenterID:       uuid.New(),
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         entity.AppointmentStatusScheduled,
	}
}

func TestNotificationDispatcherPublishesEvents(t *testing.T) {
	logger, _ := test.NewNullLogger()
	pub := &recordingPublisher{}
	d := NewNotificationDispatcher(pub, "appointments.events", 8, time.Second, logger)

	appt := testAppointment()
	d.Notify(appt, EventAppointmentBooked)
	d.Stop()

	if pub.count() != 1 {
		t.Fatalf("published %d events, want 1", pub.count())
	}
	if pub.channels[0] != "appointments.events" {
		t.Errorf("channel = %q", pub.channels[0])
	}

	var evt AppointmentEvent
	if err := json.Unmarshal(pub.payloads[0], &evt); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if evt.Event != EventAppointmentBooked || evt.AppointmentID != appt.ID {
		t.Errorf("event = %+v", evt)
	}
	if !evt.StartTime.Equal(appt.StartTime) || evt.Status != entity.AppointmentStatusScheduled {
		t.Errorf("event = %+v", evt)
	}
}

func TestNotificationDispatcherFailureIsLoggedOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	pub := &recordingPublisher{err: errors.New("redis down")}
	d := NewNotificationDispatcher(pub, "appointments.events", 8, time.Second, logger)

	d.Notify(testAppointment(), EventAppointmentCancelled)
	d.Stop()

	if pub.count() != 1 {
		t.Fatalf("published %d events, want 1", pub.count())
	}
	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning for the failed publish")
	}
}

func TestNotificationDispatcherDropsAfterStop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	pub := &recordingPublisher{}
	d := NewNotificationDispatcher(pub, "appointments.events", 8, time.Second, logger)

	d.Stop()
	d.Stop()
	d.Notify(testAppointment(), EventAppointmentBooked)

	if pub.count() != 0 {
		t.Errorf("published %d events after stop, want 0", pub.count())
	}
}

func TestNotificationDispatcherStopRacingNotifyLosesNothing(t *testing.T) {
	const senders = 64

	for round := 0; round < 20; round++ {
		logger, hook := test.NewNullLogger()
		pub := &recordingPublisher{}
		d := NewNotificationDispatcher(pub, "appointments.events", senders, time.Second, logger)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < senders; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				d.Notify(testAppointment(), EventAppointmentBooked)
			}()
		}
		close(start)
		d.Stop()
		wg.Wait()

		dropped := 0
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "dropping") {
				dropped++
			}
		}
		if pub.count()+dropped != senders {
			t.Fatalf("round %d: published %d + dropped %d, want %d accounted for", round, pub.count(), dropped, senders)
		}
	}
}
