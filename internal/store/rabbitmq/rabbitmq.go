package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// InboundMessage is one user turn arriving over the messaging transport.
type InboundMessage struct {
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

// ReplyMessage is the router's answer, published for the originating channel
// to deliver.
type ReplyMessage struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

// Bus owns the AMQP connection and the queue topology: a durable inbound
// queue dead-lettering to a DLQ, and a durable reply queue.
type Bus struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	inQueue  string
	outQueue string
}

func NewBus(url, inQueue, outQueue string) (*Bus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	dlq := inQueue + ".dlq"
	if _, err := ch.QueueDeclare(
		dlq,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	// Inbound queue: dead-letter to DLQ on reject/nack(requeue=false)
	if _, err := ch.QueueDeclare(
		inQueue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": dlq,
		},
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(outQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Bus{conn: conn, ch: ch, inQueue: inQueue, outQueue: outQueue}, nil
}

func (b *Bus) Close() error {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// Consume starts delivering inbound messages with the given prefetch count.
// Acks are manual; the worker decides per message.
func (b *Bus) Consume(prefetch int) (<-chan amqp.Delivery, error) {
	if err := b.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return b.ch.Consume(b.inQueue, "", false, false, false, false, nil)
}

// PublishReply sends the router's reply back over the reply queue.
func (b *Bus) PublishReply(ctx context.Context, msg ReplyMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return b.ch.PublishWithContext(cctx,
		"",         // default exchange
		b.outQueue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}

// PublishInbound enqueues a user turn; used by channel adapters and tools.
func (b *Bus) PublishInbound(ctx context.Context, msg InboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return b.ch.PublishWithContext(cctx,
		"",
		b.inQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
