package userconfig

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"academic-hub/internal/domain/userconfig"
	"academic-hub/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) userconfig.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchConfig(ctx context.Context, ownerID uuid.UUID) (*userconfig.Config, error) {
	c := new(Config)
	err := r.db.QueryRow(ctx, SelectConfig, ownerID.String()).Scan(
		&c.OwnerID,
		&c.OrganizationName,
		&c.LogoRef,
		&c.ThemeID,
		&c.ViewMode,
		&c.Subjects,
		&c.Categories,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c)
}

// SaveConfig replaces the whole document, the last writer wins.
func (r *Repository) SaveConfig(ctx context.Context, cfg *userconfig.Config) error {
	m, err := toDBModel(cfg)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, UpsertConfig,
		m.OwnerID.String(), m.OrganizationName, m.LogoRef, m.ThemeID, m.ViewMode,
		string(m.Subjects), string(m.Categories), m.UpdatedAt,
	)
	return err
}
