package user

import (
	"context"
	"errors"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
}
