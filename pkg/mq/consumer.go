package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}
	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

func (c *Consumer) ConsumeInteractionEvents(ctx context.Context, handler InteractionEventHandler) error {
	return consume(ctx, c.channel, InteractionEventQueue, func(ctx context.Context, body []byte) (bool, error) {
		var event InteractionEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false, err
		}
		return true, handler.HandleInteractionEvent(ctx, &event)
	})
}

func (c *Consumer) ConsumeVideoEvents(ctx context.Context, handler VideoEventHandler) error {
	return consume(ctx, c.channel, VideoEventQueue, func(ctx context.Context, body []byte) (bool, error) {
		var event VideoEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false, err
		}
		return true, handler.HandleVideoEvent(ctx, &event)
	})
}

// consume 手动确认：无法解码的消息直接丢弃，处理失败的消息重新入队
func consume(ctx context.Context, ch *amqp091.Channel, queue string, handle func(context.Context, []byte) (bool, error)) error {
	msgs, err := ch.Consume(
		queue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("%s consumer context cancelled", queue)
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Infof("%s consumer channel closed", queue)
					return
				}
				decoded, err := handle(ctx, d.Body)
				if err != nil {
					hlog.Errorf("Failed to handle message from %s: %v", queue, err)
					d.Nack(false, decoded)
					continue
				}
				d.Ack(false)
			}
		}
	}()
	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
