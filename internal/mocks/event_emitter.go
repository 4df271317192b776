package mocks

import (
	"context"

	"github.com/phrazzld/minisocial/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing
type MockEventEmitter struct {
	// EmitEventFn allows test cases to mock the EmitEvent behavior
	EmitEventFn func(ctx context.Context, event *events.Event) error

	// Emitted holds every event passed to EmitEvent, in call order
	Emitted []*events.Event
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements the events.EventEmitter interface
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	m.Emitted = append(m.Emitted, event)
	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return nil
}

// Types returns the type of every emitted event, in call order.
func (m *MockEventEmitter) Types() []string {
	types := make([]string, 0, len(m.Emitted))
	for _, e := range m.Emitted {
		types = append(types, e.Type)
	}
	return types
}
