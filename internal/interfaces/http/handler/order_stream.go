package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/event"
)

// OrderStreamHandler pushes order events to connected admin clients over
// Server-Sent Events
type OrderStreamHandler struct {
	BaseHandler
	broadcaster *event.Broadcaster
	logger      *zap.Logger
}

// NewOrderStreamHandler creates a new OrderStreamHandler
func NewOrderStreamHandler(broadcaster *event.Broadcaster, logger *zap.Logger) *OrderStreamHandler {
	return &OrderStreamHandler{broadcaster: broadcaster, logger: logger}
}

// Stream subscribes the client to the order event feed. The connection
// stays open until the client disconnects; a heartbeat event is sent
// every 15 seconds so proxies do not drop the idle stream.
func (h *OrderStreamHandler) Stream(c *gin.Context) {
	events, detach := h.broadcaster.Attach()
	defer detach()

	// the server's WriteTimeout covers the whole response; a long-lived
	// stream must shed it or it is cut off mid-connection
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("could not clear write deadline for event stream", zap.Error(err))
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(evt.EventType(), toStreamEvent(evt))
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// toStreamEvent serializes the concrete event so clients receive its
// full payload (order number, previous/new status) alongside the
// envelope, not just the generic identifiers
func toStreamEvent(evt shared.DomainEvent) string {
	payload, err := json.Marshal(evt)
	if err != nil {
		return "{}"
	}
	return string(payload)
}
