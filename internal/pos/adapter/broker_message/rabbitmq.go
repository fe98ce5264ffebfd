package brokermessage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/xpkg/config"
	"sembrador-pos/internal/xpkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchange = "pos_events"

type RabbitMQ struct {
	cfg   config.RabbitMQ
	conn  *amqp.Connection
	ch    *amqp.Channel
	mylog logger.Logger
	mu    sync.Mutex
}

// New connects a publisher for sale events. When cfg is nil the broker is
// disabled and a no-op publisher is returned: the POS works stand-alone.
func New(cfg *config.RabbitMQ, mylog logger.Logger) (core.IBroker, error) {
	if cfg == nil || cfg.Host == "" {
		return &disabled{}, nil
	}

	r := &RabbitMQ{cfg: *cfg, mylog: mylog}
	if err := r.connect(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		r.cfg.User, r.cfg.Password, r.cfg.Host, r.cfg.Port, r.cfg.VHost))
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return err
	}

	r.conn = conn
	r.ch = ch
	return nil
}

func (r *RabbitMQ) Enabled() bool { return true }

func (r *RabbitMQ) IsAlive() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return core.ErrMBConn
	}
	if r.ch == nil || r.ch.IsClosed() {
		return core.ErrMBCh
	}
	return nil
}

// Publish sends a JSON event to the pos_events exchange.
func (r *RabbitMQ) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := r.IsAlive(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         data,
	})
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		return r.conn.Close()
	}
	return nil
}

type disabled struct{}

func (disabled) Enabled() bool { return false }

func (disabled) Publish(context.Context, string, any) error { return nil }

func (disabled) Close() error { return nil }
