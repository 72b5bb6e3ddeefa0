package order

import (
	"context"
	"testing"
	"time"

	"github.com/drew18-it/watchbuy/internal/eventengine/event"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	orders         map[uuid.UUID]*Order
	receiptLookups int
}

func (f *fakeOrderStore) createFromCart(_ context.Context, userID uuid.UUID) (*Order, error) {
	newOrder := &Order{
		OrderID:     uuid.New(),
		UserID:      userID,
		Status:      StatusPending,
		TotalAmount: decimal.NewFromFloat(150.00),
		CreatedAt:   time.Now(),
		Items: []*OrderItem{
			{
				OrderItemID: uuid.New(),
				ProductID:   uuid.New(),
				Name:        "diver 200m",
				Quantity:    1,
				Price:       decimal.NewFromFloat(150.00),
			},
		},
	}
	f.orders[newOrder.OrderID] = newOrder

	return newOrder, nil
}

func (f *fakeOrderStore) completeOne(_ context.Context, orderID uuid.UUID) error {
	found, ok := f.orders[orderID]
	if !ok {
		return servererrors.ErrOrderNotFound
	}
	if found.Status == StatusPaid {
		return servererrors.ErrOrderAlreadyPaid
	}
	found.Status = StatusPaid

	return nil
}

func (f *fakeOrderStore) cancelOne(_ context.Context, orderID uuid.UUID) error {
	found, ok := f.orders[orderID]
	if !ok {
		return servererrors.ErrOrderNotFound
	}
	if found.Status == StatusPaid {
		return servererrors.ErrCannotCancelPaidOrder
	}
	found.Status = StatusCancelled

	return nil
}

func (f *fakeOrderStore) deleteOne(_ context.Context, orderID uuid.UUID) error {
	delete(f.orders, orderID)
	return nil
}

func (f *fakeOrderStore) findAllByUser(_ context.Context, _ uuid.UUID) ([]*Order, error) {
	return nil, nil
}

func (f *fakeOrderStore) findAll(_ context.Context) ([]*Order, error) {
	return nil, nil
}

func (f *fakeOrderStore) findByID(_ context.Context, orderID uuid.UUID) (*Order, error) {
	found, ok := f.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}

	return found, nil
}

func (f *fakeOrderStore) findReceiptInfo(_ context.Context, orderID uuid.UUID) (*receiptInfo, error) {
	f.receiptLookups++

	found, ok := f.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}

	return &receiptInfo{
		OrderID:       found.OrderID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CreatedAt:     found.CreatedAt,
		TotalAmount:   found.TotalAmount,
		Items:         found.Items,
	}, nil
}

type fakeEventEngine struct {
	registered  []event.EventName
	published   []*event.Event
	subscribers map[event.EventName]*event.Subscriber
}

func (f *fakeEventEngine) RegisterEvents(eventNames ...event.EventName) {
	f.registered = append(f.registered, eventNames...)
}

func (f *fakeEventEngine) Publish(e *event.Event) error {
	f.published = append(f.published, e)
	return nil
}

func (f *fakeEventEngine) Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error {
	if f.subscribers == nil {
		f.subscribers = map[event.EventName]*event.Subscriber{}
	}
	f.subscribers[toEventName] = subscriber

	return nil
}

func Test_service_checkout_publishesOrderPlaced(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}
	engine := &fakeEventEngine{}
	svc := NewService(store, engine)

	require.ElementsMatch(t, []event.EventName{
		event.OrderPlacedEventName,
		event.OrderPaidEventName,
		event.OrderCancelledEventName,
	}, engine.registered)

	resp, err := svc.checkout(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, resp.OrderID)

	require.Len(t, engine.published, 1)
	require.Equal(t, event.OrderPlacedEventName, engine.published[0].Name)

	payload, ok := engine.published[0].Payload.(*event.OrderPlacedEvent)
	require.True(t, ok)
	require.Equal(t, resp.OrderID, payload.OrderID)

	// the order details are loaded by the subscriber, not on the
	// request path
	require.Zero(t, store.receiptLookups)
}

func Test_service_completeOrder_publishesOrderPaid(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}
	engine := &fakeEventEngine{}
	svc := NewService(store, engine)

	resp, err := svc.checkout(context.Background(), uuid.New())
	require.NoError(t, err)
	engine.published = nil

	require.NoError(t, svc.completeOrder(context.Background(), resp.OrderID))
	require.Equal(t, StatusPaid, store.orders[resp.OrderID].Status)

	require.Len(t, engine.published, 1)
	require.Equal(t, event.OrderPaidEventName, engine.published[0].Name)
}

func Test_service_completeOrder_conflictSkipsEvent(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}
	engine := &fakeEventEngine{}
	svc := NewService(store, engine)

	resp, err := svc.checkout(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, svc.completeOrder(context.Background(), resp.OrderID))
	engine.published = nil

	err = svc.completeOrder(context.Background(), resp.OrderID)
	require.ErrorIs(t, err, servererrors.ErrOrderAlreadyPaid)
	require.Empty(t, engine.published)
}

func Test_service_getOrder_ownerOrAdmin(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}
	engine := &fakeEventEngine{}
	svc := NewService(store, engine)

	ownerID := uuid.New()
	resp, err := svc.checkout(context.Background(), ownerID)
	require.NoError(t, err)

	_, err = svc.getOrder(context.Background(), resp.OrderID, ownerID, "customer")
	require.NoError(t, err)

	_, err = svc.getOrder(context.Background(), resp.OrderID, uuid.New(), "admin")
	require.NoError(t, err)

	_, err = svc.getOrder(context.Background(), resp.OrderID, uuid.New(), "customer")
	require.ErrorIs(t, err, servererrors.ErrForbidden)
}
