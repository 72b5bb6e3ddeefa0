package order

import (
	"context"
	"log"

	"github.com/drew18-it/watchbuy/internal/eventengine"
	"github.com/drew18-it/watchbuy/internal/eventengine/event"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type storer interface {
	createFromCart(ctx context.Context, userID uuid.UUID) (*Order, error)
	completeOne(ctx context.Context, orderID uuid.UUID) error
	cancelOne(ctx context.Context, orderID uuid.UUID) error
	deleteOne(ctx context.Context, orderID uuid.UUID) error
	findAllByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	findAll(ctx context.Context) ([]*Order, error)
	findByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
}

type service struct {
	store       storer
	eventEngine eventengine.RegisterPublisher
}

func NewService(store storer, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:       store,
		eventEngine: eventEngine,
	}

	// Register the events this service emits so the notifier can
	// subscribe to them.
	s.eventEngine.RegisterEvents(
		event.OrderPlacedEventName,
		event.OrderPaidEventName,
		event.OrderCancelledEventName,
	)

	return s
}

// checkout materializes the user's cart into a pending order. The
// receipt and confirmation email are published as an event after the
// transaction commits; their failure never reaches the caller.
func (s *service) checkout(ctx context.Context, userID uuid.UUID) (*CheckoutResponse, error) {
	newOrder, err := s.store.createFromCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent(newOrder.OrderID, &event.OrderPlacedEvent{
		OrderID: newOrder.OrderID,
	})

	return &CheckoutResponse{OrderID: newOrder.OrderID}, nil
}

func (s *service) completeOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.store.completeOne(ctx, orderID); err != nil {
		return err
	}

	s.publishOrderEvent(orderID, &event.OrderPaidEvent{
		OrderID: orderID,
	})

	return nil
}

func (s *service) cancelOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.store.cancelOne(ctx, orderID); err != nil {
		return err
	}

	s.publishOrderEvent(orderID, &event.OrderCancelledEvent{
		OrderID: orderID,
	})

	return nil
}

func (s *service) deleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.store.deleteOne(ctx, orderID)
}

func (s *service) getOrders(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	return s.store.findAllByUser(ctx, userID)
}

func (s *service) getAllOrders(ctx context.Context) ([]*Order, error) {
	return s.store.findAll(ctx)
}

// getOrder returns an order to its owner or to an admin.
func (s *service) getOrder(ctx context.Context, orderID, requesterID uuid.UUID, requesterRole string) (*Order, error) {
	foundOrder, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if foundOrder.UserID != requesterID && requesterRole != "admin" {
		return nil, servererrors.ErrForbidden
	}

	return foundOrder, nil
}

type orderEvent interface {
	GetEventName() event.EventName
}

// publishOrderEvent hands an order lifecycle event to the engine. The
// triggering transaction has already committed and the response is on
// its way out, so a publish failure is logged and swallowed; the
// subscriber loads the order details on its own goroutine.
func (s *service) publishOrderEvent(orderID uuid.UUID, e orderEvent) {
	err := s.eventEngine.Publish(
		&event.Event{
			Name:    e.GetEventName(),
			Payload: e,
		},
	)
	if err != nil {
		log.Printf(
			"failed to publish %s event for order %s: %v",
			e.GetEventName(),
			orderID,
			err,
		)
	}
}
