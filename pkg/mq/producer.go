package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

const (
	InteractionEventExchange = "interaction_events"
	VideoEventExchange       = "video_events"
	InteractionEventQueue    = "interaction_event_queue"
	VideoEventQueue          = "video_event_queue"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

var _ MessageProducer = (*Producer)(nil)

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return producer, nil
}

// setupTopology 声明交换机、队列以及绑定关系，生产者和消费者都会调用，重复声明是幂等的
func setupTopology(ch *amqp091.Channel) error {
	bindings := []struct {
		exchange string
		queue    string
	}{
		{InteractionEventExchange, InteractionEventQueue},
		{VideoEventExchange, VideoEventQueue},
	}
	for _, b := range bindings {
		if err := ch.ExchangeDeclare(
			b.exchange,
			"direct",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", b.exchange, err)
		}
		if _, err := ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}
		if err := ch.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", b.queue, err)
		}
	}
	return nil
}

func (p *Producer) publish(ctx context.Context, exchange string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.channel.PublishWithContext(
		ctx,
		exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", exchange, err)
	}
	return nil
}

func (p *Producer) PublishInteractionEvent(ctx context.Context, event *InteractionEvent) error {
	if err := p.publish(ctx, InteractionEventExchange, event); err != nil {
		return err
	}
	hlog.CtxDebugf(ctx, "Published interaction event: %+v", event)
	return nil
}

func (p *Producer) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	if err := p.publish(ctx, VideoEventExchange, event); err != nil {
		return err
	}
	hlog.CtxDebugf(ctx, "Published video event: %+v", event)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// URL 由配置拼出 amqp 连接串
func URL(addr, username, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s/", username, password, addr)
}
