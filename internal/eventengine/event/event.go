// Package event holds the event and subscriber types exchanged through
// the event engine.
package event

type EventName string
type SubscriberName string

// Event is a named payload published through the engine. Payload is
// one of the concrete event structs defined in this package.
type Event struct {
	Name    EventName
	Payload any
}

// Subscriber is a registered consumer. Delivered events are written to
// AddressCh; the engine closes it on shutdown.
type Subscriber struct {
	Name      SubscriberName
	AddressCh chan<- any
}
