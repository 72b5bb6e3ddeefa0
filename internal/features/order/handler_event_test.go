package order

import (
	"sync"
	"testing"
	"time"

	"github.com/drew18-it/watchbuy/internal/eventengine/event"
	"github.com/drew18-it/watchbuy/internal/receipt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to          string
	subject     string
	attachments []string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, _ string, attachments ...string) error {
	f.sent = append(f.sent, sentMail{
		to:          to,
		subject:     subject,
		attachments: attachments,
	})

	return nil
}

type fakeRenderer struct {
	pending []*receipt.Order
	paid    []*receipt.Order
}

func (f *fakeRenderer) RenderPending(order *receipt.Order) (string, error) {
	f.pending = append(f.pending, order)
	return "/receipts/pending.pdf", nil
}

func (f *fakeRenderer) RenderPaid(order *receipt.Order) (string, error) {
	f.paid = append(f.paid, order)
	return "/receipts/paid.pdf", nil
}

func seedPaidOrder(store *fakeOrderStore) uuid.UUID {
	orderID := uuid.New()
	store.orders[orderID] = &Order{
		OrderID:     orderID,
		UserID:      uuid.New(),
		Status:      StatusPaid,
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

	return orderID
}

func Test_handlerEvents_orderPaid_sendsReceiptEmail(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}
	orderID := seedPaidOrder(store)

	engine := &fakeEventEngine{}
	mailer := &fakeMailer{}
	receipts := &fakeRenderer{}

	wg := &sync.WaitGroup{}
	doneCh := make(chan struct{})

	NewHandlerEvents(&HandlerEventsConfig{
		DoneCh:        doneCh,
		InternalSrvWG: wg,
		EventEngine:   engine,
		Store:         store,
		Mailer:        mailer,
		Receipts:      receipts,
	})

	sub := engine.subscribers[event.OrderPaidEventName]
	require.NotNil(t, sub)

	sub.AddressCh <- &event.OrderPaidEvent{OrderID: orderID}
	close(sub.AddressCh)
	wg.Wait()

	// the subscriber loads the order itself before rendering anything
	require.Equal(t, 1, store.receiptLookups)

	require.Len(t, receipts.paid, 1)
	require.Equal(t, orderID, receipts.paid[0].OrderID)
	require.Empty(t, receipts.pending)

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "ada@example.com", mailer.sent[0].to)
	require.Equal(t, []string{"/receipts/paid.pdf"}, mailer.sent[0].attachments)
}

func Test_handlerEvents_missingOrder_skipsEmail(t *testing.T) {
	store := &fakeOrderStore{orders: map[uuid.UUID]*Order{}}

	engine := &fakeEventEngine{}
	mailer := &fakeMailer{}
	receipts := &fakeRenderer{}

	wg := &sync.WaitGroup{}
	doneCh := make(chan struct{})

	NewHandlerEvents(&HandlerEventsConfig{
		DoneCh:        doneCh,
		InternalSrvWG: wg,
		EventEngine:   engine,
		Store:         store,
		Mailer:        mailer,
		Receipts:      receipts,
	})

	sub := engine.subscribers[event.OrderPlacedEventName]
	require.NotNil(t, sub)

	sub.AddressCh <- &event.OrderPlacedEvent{OrderID: uuid.New()}
	close(sub.AddressCh)
	wg.Wait()

	require.Equal(t, 1, store.receiptLookups)
	require.Empty(t, receipts.pending)
	require.Empty(t, mailer.sent)
}
