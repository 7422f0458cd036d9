package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// session is one connection and the channel opened on it.
type session struct {
	conn io.Closer
	ch   channel
}

func (s *session) close() error {
	_ = s.ch.Close()
	return s.conn.Close()
}

// Publisher sends JSON messages to a topic exchange.
// A dropped connection is redialed on the next publish.
type Publisher struct {
	mu       sync.Mutex
	sess     *session
	exchange string
	dial     func() (*session, error)
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{
		exchange: exchange,
		dial:     func() (*session, error) { return dialSession(url, exchange) },
	}
	sess, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.sess = sess
	return p, nil
}

func dialSession(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &session{conn: conn, ch: ch}, nil
}

// PublishJSON marshals v and publishes it with routing key key.
// A nil Publisher discards the message.
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil || p.sess.ch.IsClosed() {
		if err := p.redialLocked(); err != nil {
			return err
		}
	}
	err = p.sess.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
	if !errors.Is(err, amqp.ErrClosed) {
		return err
	}

	// The channel closed between the check and the publish.
	if err := p.redialLocked(); err != nil {
		return err
	}
	return p.sess.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
}

func (p *Publisher) redialLocked() error {
	if p.sess != nil {
		_ = p.sess.close()
		p.sess = nil
	}
	sess, err := p.dial()
	if err != nil {
		return fmt.Errorf("reconnect rabbitmq: %w", err)
	}
	p.sess = sess
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return nil
	}
	err := p.sess.close()
	p.sess = nil
	return err
}
