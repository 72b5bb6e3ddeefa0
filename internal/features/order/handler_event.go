package order

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/drew18-it/watchbuy/internal/eventengine"
	"github.com/drew18-it/watchbuy/internal/eventengine/event"
	"github.com/drew18-it/watchbuy/internal/notification"
	"github.com/drew18-it/watchbuy/internal/receipt"
	"github.com/google/uuid"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.order"

type mailer interface {
	Send(to, subject, htmlBody string, attachments ...string) error
}

type receiptRenderer interface {
	RenderPending(order *receipt.Order) (string, error)
	RenderPaid(order *receipt.Order) (string, error)
}

type receiptInfoStorer interface {
	findReceiptInfo(ctx context.Context, orderID uuid.UUID) (*receiptInfo, error)
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Store         receiptInfoStorer
	Mailer        mailer
	Receipts      receiptRenderer
	AddressChSize uint16
}

// handlerEvents consumes order lifecycle events and runs the
// fire-and-forget side effects: receipt rendering and email dispatch.
// Every failure here is logged and swallowed; the order state that
// triggered the event has already committed.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Store == nil || cfg.Mailer == nil || cfg.Receipts == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG', 'EventEngine', 'Store', 'Mailer' or 'Receipts' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine
	// will close the addressCh
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		case *event.OrderPaidEvent:
			h.orderPaidEventHandler(ne)

		case *event.OrderCancelledEvent:
			h.orderCancelledEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) orderPlacedEventHandler(newEvent *event.OrderPlacedEvent) {
	info, ok := h.fetchReceiptInfo(newEvent.OrderID)
	if !ok {
		return
	}

	pdfPath, err := h.Receipts.RenderPending(toReceiptOrder(info))
	if err != nil {
		log.Printf(
			"failed to render receipt for order %s: %v",
			newEvent.OrderID,
			err,
		)
	}

	subject, htmlBody, err := notification.RenderOrderConfirmation(
		toEmailData(info),
	)
	if err != nil {
		log.Printf(
			"failed to render confirmation email for order %s: %v",
			newEvent.OrderID,
			err,
		)
		return
	}

	h.send(info.CustomerEmail, subject, htmlBody, pdfPath)
}

func (h *handlerEvents) orderPaidEventHandler(newEvent *event.OrderPaidEvent) {
	info, ok := h.fetchReceiptInfo(newEvent.OrderID)
	if !ok {
		return
	}

	pdfPath, err := h.Receipts.RenderPaid(toReceiptOrder(info))
	if err != nil {
		log.Printf(
			"failed to render paid receipt for order %s: %v",
			newEvent.OrderID,
			err,
		)
	}

	subject, htmlBody, err := notification.RenderOrderCompleted(
		toEmailData(info),
	)
	if err != nil {
		log.Printf(
			"failed to render completion email for order %s: %v",
			newEvent.OrderID,
			err,
		)
		return
	}

	h.send(info.CustomerEmail, subject, htmlBody, pdfPath)
}

func (h *handlerEvents) orderCancelledEventHandler(newEvent *event.OrderCancelledEvent) {
	info, ok := h.fetchReceiptInfo(newEvent.OrderID)
	if !ok {
		return
	}

	subject, htmlBody, err := notification.RenderOrderCancelled(
		toEmailData(info),
	)
	if err != nil {
		log.Printf(
			"failed to render cancellation email for order %s: %v",
			newEvent.OrderID,
			err,
		)
		return
	}

	h.send(info.CustomerEmail, subject, htmlBody, "")
}

// fetchReceiptInfo loads the order snapshot an event refers to. The
// request that published the event has already been answered, so a
// failed lookup only costs the side effect.
func (h *handlerEvents) fetchReceiptInfo(orderID uuid.UUID) (*receiptInfo, bool) {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		(30 * time.Second),
	)
	defer cancel()

	info, err := h.Store.findReceiptInfo(ctx, orderID)
	if err != nil {
		log.Printf(
			"failed to load details for order %s: %v",
			orderID,
			err,
		)
		return nil, false
	}

	return info, true
}

func (h *handlerEvents) send(to, subject, htmlBody, attachment string) {
	var attachments []string
	if attachment != "" {
		attachments = append(attachments, attachment)
	}

	if err := h.Mailer.Send(to, subject, htmlBody, attachments...); err != nil {
		log.Printf("failed to send order email to %s: %v", to, err)
		return
	}

	log.Printf("order email %q sent to %s", subject, to)
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to
// each event with this handler's addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [3]event.EventName{
		event.OrderPlacedEventName,
		event.OrderPaidEventName,
		event.OrderCancelledEventName,
	}

	for _, eventName := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in subscriber: '%s'\nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}

func toReceiptOrder(info *receiptInfo) *receipt.Order {
	items := make([]receipt.Line, 0, len(info.Items))
	for _, item := range info.Items {
		items = append(items, receipt.Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	return &receipt.Order{
		OrderID:       info.OrderID,
		CustomerName:  info.CustomerName,
		CustomerEmail: info.CustomerEmail,
		Date:          info.CreatedAt,
		TotalAmount:   info.TotalAmount,
		Items:         items,
	}
}

func toEmailData(info *receiptInfo) *notification.OrderEmailData {
	return &notification.OrderEmailData{
		OrderID:      info.OrderID.String(),
		CustomerName: info.CustomerName,
		OrderDate:    info.CreatedAt.Format("January 2, 2006"),
		TotalAmount:  info.TotalAmount.StringFixed(2),
	}
}
