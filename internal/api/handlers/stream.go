package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tenkay/backend/internal/events"
	"github.com/tenkay/backend/pkg/logger"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// StreamHandler pushes publish events to browser clients over websocket
type StreamHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(hub *events.Hub, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin reads are fine: the stream carries only
			// public publish notifications
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Stream upgrades the connection and forwards hub events until the
// client disconnects
// GET /api/stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	h.logger.WithField("remote", r.RemoteAddr).Debug("Stream client connected")

	// Drain client frames so close/pong handling works; the stream is
	// one-way otherwise
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				unsubscribe()
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.WithError(err).Debug("Stream client write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
