package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	To         string
	MemberName string
	OrderID    string
	Total      int
}

type mockEmailSender struct {
	Confirmations []sentEmail
	Cancellations []sentEmail
	Err           error
}

func (m *mockEmailSender) SendOrderConfirmation(to, memberName, orderID string, total int) error {
	m.Confirmations = append(m.Confirmations, sentEmail{to, memberName, orderID, total})
	return m.Err
}

func (m *mockEmailSender) SendOrderCancellation(to, memberName, orderID string, total int) error {
	m.Cancellations = append(m.Cancellations, sentEmail{to, memberName, orderID, total})
	return m.Err
}

func newTestHandler(t *testing.T, email string) (*Handler, *mockEmailSender, *member.Member) {
	t.Helper()
	store := mocks.NewMockStore()
	m, err := member.New("kim", email, address.New("Seoul", "Teheran-ro 1", "06000"))
	require.NoError(t, err)
	store.SeedMember(m)

	sender := &mockEmailSender{}
	return NewHandler(sender, store.Members()), sender, m
}

func marshalEvent(t *testing.T, event order.Event) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestHandleEvent_OrderPlaced_SendsConfirmation(t *testing.T) {
	h, sender, m := newTestHandler(t, "kim@example.com")

	event := order.Event{
		Type:       order.EventOrderPlaced,
		OrderID:    "order-1",
		MemberID:   m.ID,
		Total:      6000,
		OccurredAt: time.Now(),
	}
	err := h.HandleEvent(context.Background(), []byte(event.OrderID), marshalEvent(t, event))

	require.NoError(t, err)
	require.Len(t, sender.Confirmations, 1)
	assert.Empty(t, sender.Cancellations)
	assert.Equal(t, sentEmail{"kim@example.com", "kim", "order-1", 6000}, sender.Confirmations[0])
}

func TestHandleEvent_OrderCancelled_SendsCancellation(t *testing.T) {
	h, sender, m := newTestHandler(t, "kim@example.com")

	event := order.Event{
		Type:       order.EventOrderCancelled,
		OrderID:    "order-1",
		MemberID:   m.ID,
		Total:      6000,
		OccurredAt: time.Now(),
	}
	err := h.HandleEvent(context.Background(), []byte(event.OrderID), marshalEvent(t, event))

	require.NoError(t, err)
	require.Len(t, sender.Cancellations, 1)
	assert.Empty(t, sender.Confirmations)
}

func TestHandleEvent_MemberWithoutEmail_Skipped(t *testing.T) {
	h, sender, m := newTestHandler(t, "")

	event := order.Event{Type: order.EventOrderPlaced, OrderID: "order-1", MemberID: m.ID}
	err := h.HandleEvent(context.Background(), []byte("order-1"), marshalEvent(t, event))

	require.NoError(t, err)
	assert.Empty(t, sender.Confirmations)
	assert.Empty(t, sender.Cancellations)
}

func TestHandleEvent_UnknownMember_Skipped(t *testing.T) {
	h, sender, _ := newTestHandler(t, "kim@example.com")

	event := order.Event{Type: order.EventOrderPlaced, OrderID: "order-1", MemberID: "no-such-member"}
	err := h.HandleEvent(context.Background(), []byte("order-1"), marshalEvent(t, event))

	// unknown members are logged and skipped, not retried
	require.NoError(t, err)
	assert.Empty(t, sender.Confirmations)
}

func TestHandleEvent_UnknownEventType_Ignored(t *testing.T) {
	h, sender, m := newTestHandler(t, "kim@example.com")

	event := order.Event{Type: "SomethingElse", OrderID: "order-1", MemberID: m.ID}
	err := h.HandleEvent(context.Background(), []byte("order-1"), marshalEvent(t, event))

	require.NoError(t, err)
	assert.Empty(t, sender.Confirmations)
	assert.Empty(t, sender.Cancellations)
}

func TestHandleEvent_MalformedPayload(t *testing.T) {
	h, _, _ := newTestHandler(t, "kim@example.com")

	err := h.HandleEvent(context.Background(), []byte("order-1"), []byte("not json"))

	assert.Error(t, err)
}

func TestHandleEvent_SendFailure_NotReturned(t *testing.T) {
	h, sender, m := newTestHandler(t, "kim@example.com")
	sender.Err = assert.AnError

	event := order.Event{Type: order.EventOrderPlaced, OrderID: "order-1", MemberID: m.ID}
	err := h.HandleEvent(context.Background(), []byte("order-1"), marshalEvent(t, event))

	// a failed send is logged, not propagated, so the consumer keeps going
	require.NoError(t, err)
	require.Len(t, sender.Confirmations, 1)
}
