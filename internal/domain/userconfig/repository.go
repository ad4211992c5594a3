package userconfig

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// FetchConfig returns nil when the owner has no stored config yet.
	FetchConfig(ctx context.Context, ownerID uuid.UUID) (*Config, error)
	SaveConfig(ctx context.Context, cfg *Config) error
}
