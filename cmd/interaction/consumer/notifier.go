package main

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/pkg/mq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const dedupPrefix = "interaction:event:"

// Notification 由一次互动切换生成的通知
type Notification struct {
	ActorID int64
	Text    string
	At      time.Time
}

// Notifier 消费互动事件并生成通知。配置了 redis 时按 EventID 去重，重投递的消息只处理一次
type Notifier struct {
	rdb  redis.UniversalClient
	ttl  time.Duration
	sink func(ctx context.Context, n Notification)
}

var _ mq.InteractionEventHandler = (*Notifier)(nil)

func NewNotifier(rdb redis.UniversalClient, ttl time.Duration) *Notifier {
	return &Notifier{rdb: rdb, ttl: ttl, sink: logNotification}
}

func logNotification(_ context.Context, n Notification) {
	logrus.WithFields(logrus.Fields{
		"actor": n.ActorID,
		"at":    n.At.Format(time.RFC3339),
	}).Info(n.Text)
}

func describe(e *mq.InteractionEvent) (string, bool) {
	verb := map[string]map[string]string{
		mq.InteractionLike:         {"added": "liked", "removed": "unliked"},
		mq.InteractionSubscription: {"added": "subscribed to", "removed": "unsubscribed from"},
	}[e.Kind][e.State]
	if verb == "" {
		return "", false
	}
	if e.Kind == mq.InteractionSubscription {
		return fmt.Sprintf("user %d %s channel %d", e.ActorID, verb, e.TargetID), true
	}
	return fmt.Sprintf("user %d %s %s %d", e.ActorID, verb, e.TargetKind, e.TargetID), true
}

// HandleInteractionEvent 无法识别的事件记录后丢弃，不重新入队
func (n *Notifier) HandleInteractionEvent(ctx context.Context, e *mq.InteractionEvent) error {
	text, ok := describe(e)
	if !ok {
		logrus.Warnf("drop interaction event %s: kind=%q state=%q", e.EventID, e.Kind, e.State)
		return nil
	}
	if n.rdb != nil && e.EventID != "" {
		fresh, err := n.rdb.SetNX(ctx, dedupPrefix+e.EventID, 1, n.ttl).Result()
		if err != nil {
			return errors.Wrapf(err, "dedup interaction event %s", e.EventID)
		}
		if !fresh {
			logrus.Debugf("interaction event %s already handled", e.EventID)
			return nil
		}
	}
	n.sink(ctx, Notification{ActorID: e.ActorID, Text: text, At: time.UnixMilli(e.Timestamp)})
	return nil
}
