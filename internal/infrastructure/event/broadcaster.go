package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/shared"
)

const subscriberBuffer = 16

// Broadcaster fans domain events out to live subscribers; the SSE order
// feed attaches one subscriber per connected admin client. Slow
// subscribers have events dropped rather than blocking the bus.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan shared.DomainEvent]struct{}
	eventTypes  []string
	logger      *zap.Logger
}

// NewBroadcaster creates a broadcaster limited to the given event types.
// With none it forwards every event.
func NewBroadcaster(logger *zap.Logger, eventTypes ...string) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan shared.DomainEvent]struct{}),
		eventTypes:  eventTypes,
		logger:      logger,
	}
}

// Handle forwards an event to every subscriber
func (b *Broadcaster) Handle(_ context.Context, event shared.DomainEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Debug("dropping event for slow subscriber",
				zap.String("event_type", event.EventType()))
		}
	}
	return nil
}

// EventTypes returns the event types this broadcaster forwards
func (b *Broadcaster) EventTypes() []string {
	return b.eventTypes
}

// Attach registers a new subscriber and returns its channel plus a
// detach function. The caller must call detach when done.
func (b *Broadcaster) Attach() (<-chan shared.DomainEvent, func()) {
	ch := make(chan shared.DomainEvent, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	detach := func() {
		b.mu.Lock()
		delete(b.subscribers, ch)
		b.mu.Unlock()
	}
	return ch, detach
}

// SubscriberCount returns the number of attached subscribers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

var _ shared.EventHandler = (*Broadcaster)(nil)
