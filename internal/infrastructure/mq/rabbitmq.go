package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"academic-hub/config"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

// Actions double as routing keys.
const (
	ActionFileCreated  = "file.created"
	ActionFileUpdated  = "file.updated"
	ActionFileTrashed  = "file.trashed"
	ActionFileRestored = "file.restored"
	ActionFileDeleted  = "file.deleted"

	// RoutingPattern binds the feed queue to every file action on a topic exchange.
	RoutingPattern = "file.*"
)

var ErrUnknownAction = errors.New("unknown event action")

func Actions() []string {
	return []string{ActionFileCreated, ActionFileUpdated, ActionFileTrashed, ActionFileRestored, ActionFileDeleted}
}

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}
	Event struct {
		Id      uuid.UUID `json:"event_id"`
		TS      time.Time `json:"time_stamp"`
		Action  string    `json:"event_action"`
		OwnerID string    `json:"owner_id"`
		FileID  string    `json:"file_id"`
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

// Connect dials the broker, retrying while it is still coming up.
func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "academichub",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: nil,
	}

	err := retry.Do(
		func() error {
			conn, err := amqp091.DialConfig(dsn, amqpCfg)
			if err != nil {
				return err
			}
			r.conn = conn
			return nil
		},
		retry.Attempts(max(r.cfg.DialAttempts, 1)),
		retry.Delay(r.cfg.DialDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			r.log.Warn("rabbitmq dial failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	var err error
	if err = r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}

	return nil
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker ")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.String("action", e.Action))
			}
		case <-ctx.Done():
			r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	pub, err := NewPublishing(e)
	if err != nil {
		// alert
		return err
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.Action,
		false,
		false,
		pub,
	)
}

// NewPublishing encodes e as a transient JSON message. Change events only
// trigger a snapshot refresh, losing one on a broker restart is harmless.
func NewPublishing(e Event) (amqp091.Publishing, error) {
	if !slices.Contains(Actions(), e.Action) {
		return amqp091.Publishing{}, fmt.Errorf("%w: %q", ErrUnknownAction, e.Action)
	}
	b, err := json.Marshal(e)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Transient,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Action,
		Body:         b,
	}, nil
}

func DecodeEvent(body []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(body, &e)
	return e, err
}

func (r *RabbitMQ) GetInputChan() chan Event     { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
