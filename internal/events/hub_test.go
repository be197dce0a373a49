package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error"})
}

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	assert.Equal(t, 1, hub.SubscriberCount())

	hub.Publish(Event{Kind: KindAnalysisPublished, Ticker: "AAPL"})

	select {
	case ev := <-ch:
		assert.Equal(t, KindAnalysisPublished, ev.Kind)
		assert.Equal(t, "AAPL", ev.Ticker)
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()
	unsubscribe() // idempotent

	assert.Equal(t, 0, hub.SubscriberCount())

	// Channel is closed after unsubscribe
	_, open := <-ch
	assert.False(t, open)
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()

	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(Event{Kind: KindFilingDetected})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestHubClose(t *testing.T) {
	hub := NewHub(testLogger())

	ch, _ := hub.Subscribe()
	hub.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount())

	// Publish and Subscribe after close are no-ops
	hub.Publish(Event{Kind: KindEarningsRefreshed})
	ch2, unsub := hub.Subscribe()
	unsub()
	_, open = <-ch2
	require.False(t, open)
}
