package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
)

type ConfigService struct {
	repo     userconfig.Repository
	validate *validator.Validate
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewConfigService(
	repo userconfig.Repository,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *ConfigService {
	return &ConfigService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		mCounter: mCounter,
		now:      time.Now,
	}
}

// Load returns the stored config or, on first access, the defaults. Defaults
// are persisted right away; if that fails they are still returned.
func (cs *ConfigService) Load(ctx context.Context, owner user.UUID) (*userconfig.Config, error) {
	cfg, err := cs.repo.FetchConfig(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = userconfig.Default(owner)
	cfg.UpdatedAt = cs.now().UTC()
	if err = cs.repo.SaveConfig(ctx, cfg); err != nil {
		cs.logger.Warn("persist default config failed", zap.Stringer("owner", owner), zap.Error(err))
	}

	return cfg, nil
}

// Save replaces the owner's config. On failure nothing is cached anywhere,
// the caller keeps whatever it had before.
func (cs *ConfigService) Save(ctx context.Context, owner user.UUID, in userconfig.Config) (*userconfig.Config, error) {
	cfg := in.Clone()
	cfg.OwnerID = owner
	cfg.OrganizationName = strings.TrimSpace(cfg.OrganizationName)
	cfg.UpdatedAt = cs.now().UTC()

	if err := cs.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cs.repo.SaveConfig(ctx, cfg); err != nil {
		cs.mCounter.WithLabelValues("config_save_failed_total").Inc()
		return nil, fmt.Errorf("%w: %w", ErrConfigSaveFailed, err)
	}

	cs.mCounter.WithLabelValues("config_saved_total").Inc()

	return cfg, nil
}

// AddSubject appends a subject whose id is derived from its name.
func (cs *ConfigService) AddSubject(ctx context.Context, owner user.UUID, name, iconKey string) (*userconfig.Config, error) {
	name = strings.TrimSpace(name)
	id := userconfig.Slug(name)
	if id == "" {
		return nil, fmt.Errorf("%w: subject name %q yields an empty id", ErrInvalidConfig, name)
	}

	cfg, err := cs.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cfg.HasSubject(id) {
		return nil, ErrSubjectExists
	}

	next := cfg.Clone()
	next.Subjects = append(next.Subjects, userconfig.Subject{ID: id, Name: name, IconKey: iconKey})

	return cs.Save(ctx, owner, *next)
}

// RemoveSubject drops the subject from the taxonomy. Files filed under it are kept.
func (cs *ConfigService) RemoveSubject(ctx context.Context, owner user.UUID, subjectID string) (*userconfig.Config, error) {
	cfg, err := cs.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	next := cfg.Clone()
	if !next.RemoveSubject(subjectID) {
		return nil, ErrSubjectNotFound
	}

	return cs.Save(ctx, owner, *next)
}
