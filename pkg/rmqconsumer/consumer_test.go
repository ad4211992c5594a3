package rmqconsumer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"academic-hub/config"
	"academic-hub/internal/infrastructure/mq"
)

type fakeNotifier struct {
	mu     sync.Mutex
	owners []uuid.UUID
}

func (f *fakeNotifier) Notify(_ context.Context, owner uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners = append(f.owners, owner)
}

func (f *fakeNotifier) notified() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.owners...)
}

func eventBody(t *testing.T, action, owner string) []byte {
	t.Helper()
	pub, err := mq.NewPublishing(mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		OwnerID: owner,
		FileID:  uuid.NewString(),
	})
	require.NoError(t, err)
	return pub.Body
}

func Test_delivery_Table(t *testing.T) {
	owner := uuid.New()

	type tc struct {
		name       string
		routingKey string
		body       []byte
		wantErr    bool
		wantOwners []uuid.UUID
	}
	cases := []tc{
		{"created", mq.ActionFileCreated, eventBody(t, mq.ActionFileCreated, owner.String()), false, []uuid.UUID{owner}},
		{"trashed", mq.ActionFileTrashed, eventBody(t, mq.ActionFileTrashed, owner.String()), false, []uuid.UUID{owner}},
		{"deleted", mq.ActionFileDeleted, eventBody(t, mq.ActionFileDeleted, owner.String()), false, []uuid.UUID{owner}},
		{"malformed body", mq.ActionFileUpdated, []byte(`{"id":`), true, nil},
		{"bad owner", mq.ActionFileUpdated, eventBody(t, mq.ActionFileUpdated, "nope"), true, nil},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{}
			c := New(config.MQ{}, zap.NewNop(), n)

			err := c.delivery(context.Background(), amqp091.Delivery{RoutingKey: tt.routingKey, Body: tt.body})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOwners, n.notified())
		})
	}
}

func TestDeliveryWorker_StopsOnClosedChannel(t *testing.T) {
	owner := uuid.New()
	n := &fakeNotifier{}
	c := New(config.MQ{}, zap.NewNop(), n)

	ch := make(chan amqp091.Delivery, 1)
	ch <- amqp091.Delivery{RoutingKey: mq.ActionFileCreated, Body: eventBody(t, mq.ActionFileCreated, owner.String())}
	close(ch)
	c.chDelivery = ch

	done := make(chan struct{})
	go func() {
		c.DeliveryWorker(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, []uuid.UUID{owner}, n.notified())
}

func TestConnect_InvalidDSN(t *testing.T) {
	l := zap.NewNop()
	c := New(config.MQ{}, l, &fakeNotifier{})

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
