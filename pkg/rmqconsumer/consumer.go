package rmqconsumer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"academic-hub/config"
	"academic-hub/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 16

// Notifier is told which owner's file set changed.
type Notifier interface {
	Notify(ctx context.Context, owner uuid.UUID)
}

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	notifier   Notifier
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
	queueName  string
}

func New(cfg config.MQ, logger *zap.Logger, notifier Notifier) *Consumer {
	return &Consumer{
		cfg:      cfg,
		log:      logger,
		notifier: notifier,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init declares an exclusive queue per process so that every instance
// serving live streams sees every change event.
func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	q, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName+"."+uuid.NewString()[:8],
		false,
		true,
		true,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	c.queueName = q.Name

	if err = c.chConsume.QueueBind(
		q.Name,
		mq.RoutingPattern,
		c.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind %s: %w", mq.RoutingPattern, err)
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = c.chConsume.Consume(
		q.Name,
		"",
		true,
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker", zap.String("queue", c.queueName))

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed, live streams will go stale")
				return
			}
			if err := c.delivery(ctx, msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			if c.conn != nil {
				_ = c.conn.Close()
			}
			return
		}
	}
}

func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	e, err := mq.DecodeEvent(msg.Body)
	if err != nil {
		return fmt.Errorf("decode %s event: %w", msg.RoutingKey, err)
	}

	owner, err := uuid.Parse(e.OwnerID)
	if err != nil {
		return fmt.Errorf("event %s: invalid owner id %q: %w", e.Id, e.OwnerID, err)
	}

	c.log.Debug("file event received",
		zap.String("action", msg.RoutingKey),
		zap.Stringer("owner", owner),
		zap.String("file_id", e.FileID),
	)
	c.notifier.Notify(ctx, owner)

	return nil
}
