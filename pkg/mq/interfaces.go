package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishInteractionEvent(ctx context.Context, event *InteractionEvent) error
	PublishVideoEvent(ctx context.Context, event *VideoEvent) error
	Close() error
}

type InteractionEventHandler interface {
	HandleInteractionEvent(ctx context.Context, event *InteractionEvent) error
}

type VideoEventHandler interface {
	HandleVideoEvent(ctx context.Context, event *VideoEvent) error
}
