package notify

import (
	"context"
	"sync"
	"time"

	"tournament/metrics"
	"tournament/models"

	"github.com/charmbracelet/log"
)

const (
	EventTeamRegistered = "team-registered"
	EventPaymentUpdated = "payment-updated"
)

type Event struct {
	Name      string
	Data      interface{}
	Timestamp time.Time
}

type TeamRegistered struct {
	GameType  models.GameType `json:"gameType"`
	Timestamp time.Time       `json:"timestamp"`
}

type PaymentUpdated struct {
	TeamID    string    `json:"teamId"`
	Timestamp time.Time `json:"timestamp"`
}

// Emitter sends events to the realtime channel from a single background
// worker. Callers never wait for delivery: when the queue is full the event
// is dropped, and publish failures are only logged.
type Emitter struct {
	publisher Publisher
	logger    *log.Logger
	timeout   time.Duration
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

// NewEmitter starts the worker. A nil publisher makes every event a logged
// no-op.
func NewEmitter(publisher Publisher, logger *log.Logger, queueSize int, timeout time.Duration) *Emitter {
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	e := &Emitter{
		publisher: publisher,
		logger:    logger.WithPrefix("notify"),
		timeout:   timeout,
		now:       time.Now,
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Emitter) TeamRegistered(game models.GameType) {
	now := e.now().UTC()
	e.enqueue(Event{
		Name:      EventTeamRegistered,
		Data:      TeamRegistered{GameType: game, Timestamp: now},
		Timestamp: now,
	})
}

func (e *Emitter) StatusChanged(teamID string) {
	now := e.now().UTC()
	e.enqueue(Event{
		Name:      EventPaymentUpdated,
		Data:      PaymentUpdated{TeamID: teamID, Timestamp: now},
		Timestamp: now,
	})
}

func (e *Emitter) enqueue(event Event) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.drop(event, "emitter closed")
		return
	}
	select {
	case e.queue <- event:
	default:
		e.drop(event, "queue full")
	}
}

func (e *Emitter) drop(event Event, reason string) {
	metrics.Notifications.WithLabelValues(event.Name, metrics.OutcomeDropped).Inc()
	e.logger.Warn("dropping notification", "event", event.Name, "reason", reason)
}

func (e *Emitter) run() {
	defer close(e.done)
	for event := range e.queue {
		e.publish(event)
	}
}

func (e *Emitter) publish(event Event) {
	if e.publisher == nil {
		e.logger.Debug("realtime not configured, skipping notification", "event", event.Name)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	if err := e.publisher.Publish(ctx, event); err != nil {
		metrics.Notifications.WithLabelValues(event.Name, metrics.OutcomeFailed).Inc()
		e.logger.Error("failed to publish notification", "event", event.Name, "err", err)
		return
	}
	metrics.Notifications.WithLabelValues(event.Name, metrics.OutcomePublished).Inc()
}

// Close stops accepting events, delivers what is already queued and closes
// the publisher. It is safe to call more than once.
func (e *Emitter) Close() error {
	var err error
	e.once.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()

		<-e.done
		if e.publisher != nil {
			err = e.publisher.Close()
		}
	})
	return err
}
