package event

import (
	"github.com/google/uuid"
)

var (
	OrderPlacedEventName    EventName = "order.placed"
	OrderPaidEventName      EventName = "order.paid"
	OrderCancelledEventName EventName = "order.cancelled"
)

// Order lifecycle events carry only the order id. Subscribers load
// whatever order details they need themselves, off the request path.

type OrderPlacedEvent struct {
	OrderID uuid.UUID
}

func (e *OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}

type OrderPaidEvent struct {
	OrderID uuid.UUID
}

func (e *OrderPaidEvent) GetEventName() EventName {
	return OrderPaidEventName
}

type OrderCancelledEvent struct {
	OrderID uuid.UUID
}

func (e *OrderCancelledEvent) GetEventName() EventName {
	return OrderCancelledEventName
}
