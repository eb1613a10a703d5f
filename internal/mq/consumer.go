package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A non-nil error requeues the message.
type MessageHandler func(ctx context.Context, data json.RawMessage) error

// Consumer binds one queue to one routing key.
type Consumer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queue      amqp091.Queue
	routingKey string
	handler    MessageHandler
}

// NewConsumer creates a consumer for a routing key.
func NewConsumer(url, queueName, routingKey string) (*Consumer, error) {
	conn, err := NewConnection(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := DeclareExchange(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	logger.Info("Consumer initialized: queue=%s routing_key=%s", q.Name, routingKey)

	return &Consumer{
		conn:       conn,
		channel:    ch,
		queue:      q,
		routingKey: routingKey,
	}, nil
}

func (c *Consumer) SetHandler(h MessageHandler) {
	c.handler = h
}

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// StartConsuming blocks draining the queue; run it in a goroutine.
// Every delivery ends in an ack or a nack-with-requeue.
func (c *Consumer) StartConsuming() error {
	if c.handler == nil {
		return fmt.Errorf("consumer handler not set")
	}

	deliveries, err := c.channel.Consume(
		c.queue.Name,
		"linkup-worker",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range deliveries {
		func() {
			ctx := context.Background()

			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panic recovered on %s: %v", c.routingKey, r)
					if err := msg.Nack(false, true); err != nil {
						logger.Error("Failed to nack message after panic: %v", err)
					}
				}
			}()

			if err := c.handler(ctx, msg.Body); err != nil {
				logger.Error("Handler error on %s: %v", c.routingKey, err)
				if err := msg.Nack(false, true); err != nil {
					logger.Error("Failed to nack message: %v", err)
				}
				return
			}

			if err := msg.Ack(false); err != nil {
				logger.Error("Failed to ack message: %v", err)
			}
		}()
	}

	return nil
}
