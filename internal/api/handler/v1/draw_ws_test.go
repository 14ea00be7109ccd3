package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawFeedHandler_NotifyBurstLosesNothing(t *testing.T) {
	h := NewDrawFeedHandler(&fakeDrawService{})

	// Far more notifications than any queue depth, before the hub drains.
	for i := 0; i < 100; i++ {
		h.NotifyRounds(uint(i%5 + 1))
	}

	pending := h.takePending()
	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5}, pending, "every notified round must survive the burst")
	assert.Empty(t, h.takePending(), "draining is destructive")
}

func TestDrawFeedHandler_PushesSnapshotOnNotify(t *testing.T) {
	h := NewDrawFeedHandler(&fakeDrawService{})
	go h.Run()

	client := &drawClient{
		id:       "editor-1",
		send:     make(chan []byte, 4),
		roundIDs: []uint{1},
	}
	h.register <- client

	requireMessage(t, client.send) // snapshot on connect

	h.NotifyRounds(1)
	requireMessage(t, client.send)

	h.unregister <- client
}

func requireMessage(t *testing.T, send chan []byte) {
	t.Helper()

	select {
	case message := <-send:
		assert.Contains(t, string(message), `"type":"snapshot"`)
	case <-time.After(time.Second):
		require.Fail(t, "expected a snapshot push")
	}
}
