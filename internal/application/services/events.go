package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/infrastructure/mq"
)

// publishFileEvent hands a change event to the publisher worker so that
// every live subscription of the owner gets a fresh snapshot.
func publishFileEvent(ctx context.Context, q ports.RabbitMQ, action string, owner user.UUID, id filerecord.ID) {
	if q == nil {
		return
	}

	e := mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		OwnerID: owner.String(),
		FileID:  id.String(),
	}

	in := q.GetInputChan()
	select {
	case in <- e:
		return
	default:
	}
	select {
	case in <- e:
	case <-ctx.Done():
	}
}
