package queue

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// AMQPQueue publishes to RabbitMQ. Each topic is a durable queue of the same
// name on the default exchange.
type AMQPQueue struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to queue: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open queue channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch, declared: map[string]bool{}}, nil
}

func (q *AMQPQueue) declareLocked(topic string) error {
	if q.declared[topic] {
		return nil
	}
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	q.declared[topic] = true
	return nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.declareLocked(topic); err != nil {
		return err
	}
	return q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Subscribe consumes topic and acks each delivery the handler accepts.
// Failed deliveries are requeued once, then dropped.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	if err := q.declareLocked(topic); err != nil {
		q.mu.Unlock()
		return err
	}
	msgs, err := q.ch.Consume(topic, "", false, false, false, false, nil)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				logrus.WithError(err).WithField("topic", topic).Warn("⚠️ delivery failed")
				d.Nack(false, !d.Redelivered)
				continue
			}
			d.Ack(false)
		}
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	q.ch.Close()
	return q.conn.Close()
}

var (
	_ Queue = (*InMemoryQueue)(nil)
	_ Queue = (*AMQPQueue)(nil)
)
