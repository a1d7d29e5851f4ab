package rabbitmq

import (
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// Queue carrying order lifecycle events (order.placed,
// order.status_advanced). Consumers such as fulfilment or analytics read
// from it; the shop only ever publishes best-effort.
const orderEventsQueue = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the order
// events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		orderEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", orderEventsQueue, err)
	}

	log.Printf("RabbitMQ client connected, %s declared", orderEventsQueue)

	return &Client{conn: conn, channel: ch}, nil
}

// Publish sends a persistent JSON message to the order events queue.
func (c *Client) Publish(routingKey string, body []byte) error {
	err := c.channel.Publish(
		"",               // default exchange
		orderEventsQueue, // routed straight to the queue
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         routingKey,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// ConsumeOrderEvents delivers each message on the order events queue to the
// handler, acknowledging on nil and requeueing on error. It blocks until the
// channel closes.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	deliveries, err := c.channel.Consume(
		orderEventsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", orderEventsQueue, err)
	}

	for msg := range deliveries {
		if err := handler(msg); err != nil {
			log.Printf("Order event handling failed (tag %d): %v", msg.DeliveryTag, err)
			msg.Nack(false, true)
			continue
		}
		msg.Ack(false)
	}
	return nil
}

// Close shuts down the channel and connection.
func (c *Client) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
