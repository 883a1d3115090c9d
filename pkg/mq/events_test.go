package mq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInteractionEvent(t *testing.T) {
	a := NewInteractionEvent(InteractionLike, "video", 10, 1, "added")
	b := NewInteractionEvent(InteractionLike, "video", 10, 1, "removed")
	require.NotEqual(t, a.EventID, b.EventID)
	require.Equal(t, int64(10), a.TargetID)
	require.NotZero(t, a.Timestamp)

	body, err := json.Marshal(a)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "added", decoded["state"])
	require.Equal(t, "like", decoded["kind"])
}

func TestURL(t *testing.T) {
	require.Equal(t, "amqp://guest:pw@127.0.0.1:5672/", URL("127.0.0.1:5672", "guest", "pw"))
}
