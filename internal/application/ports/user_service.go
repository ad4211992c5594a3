package ports

import (
	"context"

	"academic-hub/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Register(ctx context.Context, email, passwordHash string) (*user.User, error)
}
