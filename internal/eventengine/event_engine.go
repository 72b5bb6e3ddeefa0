package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/drew18-it/watchbuy/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []*event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

// eventEngine is the in-process outbox for fire-and-forget side effects.
// Services publish after their transaction commits; subscribers consume
// on their own goroutines, so a slow or failing side effect never blocks
// or fails the request that triggered it.
type eventEngine struct {
	*EventEngineConfig
	eventEngineCh chan *event.Event
	events        map[event.EventName]*subscribers
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil {
		log.Fatalln("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("either DoneCh or InternalSrvWG is nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	log.Println("event engine is listening...")

	for {
		select {
		case <-e.DoneCh:
			close(e.eventEngineCh)
			log.Println("event engine is shutting down, draining pending events")

			for pending := range e.eventEngineCh {
				e.broadcast(pending)
			}

			e.shutdownSubscribersAddressCh()
			return

		case newEvent, isOpened := <-e.eventEngineCh:
			if !isOpened {
				log.Println("eventEngineCh is closed")
				return
			}

			e.broadcast(newEvent)
		}
	}
}

// broadcast fans an event out to every subscriber's addressCh.
func (e *eventEngine) broadcast(newEvent *event.Event) {
	subs, exists := e.events[newEvent.Name]
	if !exists {
		log.Printf(
			"event %v not found. check your event handler",
			newEvent.Name,
		)
		return
	}

	for i, addressCh := range subs.addressChs {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
				subs.names[i],
			)
			continue
		}

		addressCh <- newEvent.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to, to the
// [eventEngine].
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			log.Println("event already exists")
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	log.Println("registering events:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service has called 'RegisterEvents()' for it, or check the event name you passed",
			toEventName,
		)
	}

	e.events[toEventName] = &subscribers{
		names:      append(e.events[toEventName].names, &newSubscriber.Name),
		addressChs: append(e.events[toEventName].addressChs, newSubscriber.AddressCh),
	}

	return nil
}

func (e *eventEngine) Publish(newEvent *event.Event) error {
	if _, exists := e.events[newEvent.Name]; !exists {
		return fmt.Errorf(
			"event %v not found. check the service which is to publish the event to make sure they called 'RegisterEvents()'",
			newEvent.Name,
		)
	}

	e.eventEngineCh <- newEvent

	return nil
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	log.Println("shutting subscriber addressChs down")

	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil {
				continue
			}
			close(addressCh)
		}
	}
}
