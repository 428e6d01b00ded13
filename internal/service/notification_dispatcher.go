package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Appointment events published after a successful commit
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentUpdated   = "appointment.updated"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentStarted   = "appointment.started"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentNoShow    = "appointment.no_show"
)

// Notifier is fire-and-forget: callers never see delivery failures.
type Notifier interface {
	Notify(appointment *entity.Appointment, event string)
}

// Publisher delivers an encoded event to a channel
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher publishes events with Redis PUBLISH
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// AppointmentEvent is the wire format of a notification
type AppointmentEvent struct {
	Event          string                   `json:"event"`
	AppointmentID  uuid.UUID                `json:"appointmentId"`
	CenterID       uuid.UUID                `json:"centerId"`
	PatientID      uuid.UUID                `json:"patientId"`
	PractitionerID uuid.UUID                `json:"practitionerId"`
	Status         entity.AppointmentStatus `json:"status"`
	StartTime      time.Time                `json:"startTime"`
	EndTime        time.Time                `json:"endTime"`
	OccurredAt     time.Time                `json:"occurredAt"`
}

// NotificationDispatcher queues appointment events in memory and publishes
// them from a single background worker. A full queue drops the event.
//
// Call Stop() during graceful shutdown; queued events are flushed first.
type NotificationDispatcher struct {
	publisher      Publisher
	channel        string
	publishTimeout time.Duration
	log            *logrus.Logger

	queue chan AppointmentEvent

	// Graceful shutdown. mu is held for reading across the stopped check and
	// the enqueue, so Stop never closes while an event is half-way in.
	mu       sync.RWMutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  bool
}

func NewNotificationDispatcher(publisher Publisher, channel string, queueSize int, publishTimeout time.Duration, log *logrus.Logger) *NotificationDispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &NotificationDispatcher{
		publisher:      publisher,
		channel:        channel,
		publishTimeout: publishTimeout,
		log:            log,
		queue:          make(chan AppointmentEvent, queueSize),
		stopChan:       make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Notify enqueues an event without blocking
func (d *NotificationDispatcher) Notify(appointment *entity.Appointment, event string) {
	if appointment == nil {
		return
	}

	evt := AppointmentEvent{
		Event:          event,
		AppointmentID:  appointment.ID,
		CenterID:       appointment.CenterID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		Status:         appointment.Status,
		StartTime:      appointment.StartTime.UTC(),
		EndTime:        appointment.EndTime.UTC(),
		OccurredAt:     time.Now().UTC(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.log.Warnf("Notification dispatcher stopped, dropping %s for appointment %s", event, appointment.ID)
		return
	}

	select {
	case d.queue <- evt:
	default:
		d.log.Warnf("Notification queue full, dropping %s for appointment %s", event, appointment.ID)
	}
}

// Stop gracefully shuts down the dispatcher.
// Safe to call multiple times.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.stopChan)
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info("NotificationDispatcher stopped")
}

func (d *NotificationDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case evt := <-d.queue:
			d.publish(evt)
		case <-d.stopChan:
			d.drain()
			return
		}
	}
}

func (d *NotificationDispatcher) drain() {
	for {
		select {
		case evt := <-d.queue:
			d.publish(evt)
		default:
			return
		}
	}
}

func (d *NotificationDispatcher) publish(evt AppointmentEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		d.log.Warnf("Failed to encode %s for appointment %s: %+v", evt.Event, evt.AppointmentID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, d.channel, payload); err != nil {
		d.log.Warnf("Failed to publish %s for appointment %s: %+v", evt.Event, evt.AppointmentID, err)
		return
	}

	d.log.Debugf("Published %s for appointment %s", evt.Event, evt.AppointmentID)
}
