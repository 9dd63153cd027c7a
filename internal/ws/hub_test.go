package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWrapsEvent(t *testing.T) {
	h := NewHub()
	h.Publish("order_request_created", map[string]interface{}{"sku": "BOLT1"})

	select {
	case msg := <-h.Broadcast:
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, "order_request_created", ev.Type)
		assert.Equal(t, "BOLT1", ev.Data["sku"])
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event was not broadcast")
	}
	assert.Equal(t, 0, h.ClientCount())
}
