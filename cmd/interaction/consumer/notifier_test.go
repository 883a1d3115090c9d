package main

import (
	"context"
	"testing"

	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/require"
)

func TestNotifierDescribesEvents(t *testing.T) {
	var got []Notification
	n := NewNotifier(nil, 0)
	n.sink = func(_ context.Context, note Notification) { got = append(got, note) }
	ctx := context.Background()

	require.NoError(t, n.HandleInteractionEvent(ctx, mq.NewInteractionEvent(mq.InteractionLike, "video", 10, 2, "added")))
	require.NoError(t, n.HandleInteractionEvent(ctx, mq.NewInteractionEvent(mq.InteractionSubscription, "channel", 1, 2, "removed")))
	require.NoError(t, n.HandleInteractionEvent(ctx, mq.NewInteractionEvent("share", "video", 10, 2, "added")))
	require.NoError(t, n.HandleInteractionEvent(ctx, mq.NewInteractionEvent(mq.InteractionLike, "video", 10, 2, "pending")))

	require.Len(t, got, 2)
	require.Equal(t, "user 2 liked video 10", got[0].Text)
	require.Equal(t, "user 2 unsubscribed from channel 1", got[1].Text)
	require.EqualValues(t, 2, got[0].ActorID)
}
