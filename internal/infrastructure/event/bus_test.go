package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

type panickingHandler struct{}

func (h *panickingHandler) Handle(context.Context, shared.DomainEvent) error {
	panic("boom")
}

func (h *panickingHandler) EventTypes() []string { return nil }

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "order", uuid.New())
	return &e
}

func TestBus_RoutesByEventType(t *testing.T) {
	bus := NewBus(zap.NewNop())

	orderHandler := &recordingHandler{types: []string{order.EventTypeOrderStatusChanged}}
	allHandler := &recordingHandler{}
	bus.Subscribe(orderHandler)
	bus.Subscribe(allHandler)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent(order.EventTypeOrderStatusChanged),
		newTestEvent("crm.customer.created")))

	assert.Equal(t, 1, orderHandler.seen())
	assert.Equal(t, 2, allHandler.seen())
}

func TestBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	failing := &recordingHandler{err: errors.New("handler broke")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("x")))
	assert.Equal(t, 1, failing.seen())
	assert.Equal(t, 1, healthy.seen())
}

func TestBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewBus(zap.NewNop())

	healthy := &recordingHandler{}
	bus.Subscribe(&panickingHandler{})
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("x")))
	assert.Equal(t, 1, healthy.seen())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := &recordingHandler{types: []string{"a", "b"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("a")))
	assert.Zero(t, handler.seen())
}

func TestBroadcaster_FansOutToSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	broadcaster := NewBroadcaster(zap.NewNop(), order.EventTypeOrderCreated, order.EventTypeOrderStatusChanged)
	bus.Subscribe(broadcaster)

	ch1, detach1 := broadcaster.Attach()
	ch2, detach2 := broadcaster.Attach()
	defer detach2()

	require.NoError(t, bus.Publish(context.Background(), newTestEvent(order.EventTypeOrderCreated)))
	assert.Equal(t, order.EventTypeOrderCreated, (<-ch1).EventType())
	assert.Equal(t, order.EventTypeOrderCreated, (<-ch2).EventType())

	// events outside the subscribed types are not forwarded
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("crm.customer.created")))
	select {
	case e := <-ch1:
		t.Fatalf("unexpected event %s", e.EventType())
	default:
	}

	detach1()
	assert.Equal(t, 1, broadcaster.SubscriberCount())
}

func TestBroadcaster_DropsWhenSubscriberIsFull(t *testing.T) {
	broadcaster := NewBroadcaster(zap.NewNop())
	ch, detach := broadcaster.Attach()
	defer detach()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, broadcaster.Handle(context.Background(), newTestEvent("x")))
	}
	assert.Len(t, ch, subscriberBuffer)
}
