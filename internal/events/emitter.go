package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoSubscribers is returned when an event is dispatched before anything
// subscribed to it. The notification it carried is lost.
var ErrNoSubscribers = errors.New("no subscribers for event")

// Dispatcher fans each notification event out to its subscribers on the
// caller's goroutine. EmitEvent returns only after every subscriber has seen
// the event, so a notification is stored by the time the action that caused
// it completes.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []EventHandler
	logger      *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher delivering to subscribers in the order
// given.
func NewDispatcher(logger *slog.Logger, subscribers ...EventHandler) *Dispatcher {
	return &Dispatcher{
		subscribers: append([]EventHandler(nil), subscribers...),
		logger:      logger.With("component", "notification_dispatcher"),
	}
}

// Subscribe appends handler after the existing subscribers.
func (d *Dispatcher) Subscribe(handler EventHandler) {
	d.mu.Lock()
	d.subscribers = append(d.subscribers, handler)
	n := len(d.subscribers)
	d.mu.Unlock()

	d.logger.Debug("subscriber added", "subscriber_count", n)
}

// EmitEvent hands event to every subscriber. A failing subscriber does not
// keep the event from the rest; all failures are joined into the result.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *Event) error {
	d.mu.RLock()
	subscribers := d.subscribers[:len(d.subscribers):len(d.subscribers)]
	d.mu.RUnlock()

	if len(subscribers) == 0 {
		d.logger.Warn("dropping event without subscribers",
			"event_id", event.ID,
			"event_type", event.Type)
		return fmt.Errorf("%w: %s", ErrNoSubscribers, event.Type)
	}

	var errs []error
	for i, s := range subscribers {
		if err := s.HandleEvent(ctx, event); err != nil {
			d.logger.Error("subscriber rejected event",
				"error", err,
				"subscriber", i,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}

	d.logger.Debug("event dispatched",
		"event_id", event.ID,
		"event_type", event.Type,
		"subscriber_count", len(subscribers),
		"failures", len(errs))
	return errors.Join(errs...)
}
