package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/infrastructure/event"
)

// streamRecorder adds the CloseNotify gin's Stream loop needs and guards
// the body against concurrent reads while the handler is still writing
type streamRecorder struct {
	*httptest.ResponseRecorder
	mu     sync.Mutex
	closed chan bool
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closed:           make(chan bool, 1),
	}
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *streamRecorder) WriteString(s string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.WriteString(s)
}

func (r *streamRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Body.String()
}

func TestOrderStreamHandler_ForwardsFullEventPayload(t *testing.T) {
	broadcaster := event.NewBroadcaster(zap.NewNop(),
		order.EventTypeOrderCreated, order.EventTypeOrderStatusChanged)
	h := NewOrderStreamHandler(broadcaster, zap.NewNop())

	r := gin.New()
	r.GET("/admin/orders/stream", h.Stream)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders/stream", nil).WithContext(ctx)
	rec := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return broadcaster.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)

	o, err := order.New(order.CustomerSnapshot{
		Name:  "Karima Akter",
		Phone: "01811223344",
	}, order.PaymentCashOnDelivery)
	require.NoError(t, err)

	evt := order.NewStatusChangedEvent(o, order.StatusPending, order.StatusConfirmed)
	require.NoError(t, broadcaster.Handle(context.Background(), evt))

	require.Eventually(t, func() bool {
		return strings.Contains(rec.body(), o.OrderNumber)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not terminate on client disconnect")
	}

	body := rec.body()
	assert.Contains(t, body, "event:OrderStatusChanged")
	assert.Contains(t, body, `"order_number":"`+o.OrderNumber+`"`)
	assert.Contains(t, body, `"previous_status":"pending"`)
	assert.Contains(t, body, `"new_status":"confirmed"`)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	// the subscriber detaches when the connection closes
	assert.Equal(t, 0, broadcaster.SubscriberCount())
}
