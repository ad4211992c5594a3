package user

import (
	"time"

	"github.com/google/uuid"
)

const RoleOwner = "owner"

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Email        string
		PasswordHash *string
		Role         string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)
