package events

import (
	"sync"
	"time"

	"github.com/tenkay/backend/pkg/logger"
)

// Event kinds pushed to stream subscribers
const (
	KindAnalysisPublished = "analysis_published"
	KindEarningsRefreshed = "earnings_refreshed"
	KindFilingDetected    = "filing_detected"
)

// Event is a notification pushed to connected stream clients
type Event struct {
	Kind      string      `json:"kind"`
	Ticker    string      `json:"ticker,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to subscribers.
// All publish notifications flow through this hub.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	logger      *logger.Logger
	closed      bool
}

// subscriber channel buffer; slow consumers drop events rather than
// blocking publishers
const subscriberBuffer = 16

// NewHub creates a new event hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		logger:      log,
	}
}

// Subscribe registers a new subscriber and returns its event channel
// along with an unsubscribe function
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}

	return ch, unsubscribe
}

// Publish sends an event to all subscribers. Subscribers whose buffer
// is full miss the event.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	dropped := 0
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		h.logger.WithFields(map[string]interface{}{
			"kind":    event.Kind,
			"dropped": dropped,
		}).Warn("Dropped event for slow subscribers")
	}
}

// SubscriberCount returns the number of active subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close shuts down the hub and closes all subscriber channels
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
