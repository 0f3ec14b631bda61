// Package pubsub provides a generic publish/subscribe event system used to
// fan history changes, cleaning results, and log entries out to the UI.
package pubsub

import (
	"context"
	"time"
)

// EventType identifies the kind of event being published. Packages define
// their own typed constants (e.g. history.ChangedEvent).
type EventType string

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
