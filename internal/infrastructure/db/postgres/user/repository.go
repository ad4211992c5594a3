package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"academic-hub/internal/domain/user"
	"academic-hub/internal/infrastructure/db/postgres"
)

// Repository stores owner accounts. Lookups of unknown accounts return
// (nil, nil).
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return lookup(r.db.QueryRow(ctx, SelectUserByID, id.String()))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return lookup(r.db.QueryRow(ctx, SelectUserByEmail, email))
}

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, InsertUser, email, passwordHash))
	if postgres.IsPgUniqueViolation(err) {
		return nil, user.ErrEmailAlreadyExists
	}
	return u, err
}

func lookup(row pgx.Row) (*user.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.UUID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
