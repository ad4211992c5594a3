package userconfig

import (
	"encoding/json"
	"fmt"

	domain "academic-hub/internal/domain/userconfig"
)

func fromDBModel(model *Config) (*domain.Config, error) {
	c := &domain.Config{
		OwnerID:          model.OwnerID,
		OrganizationName: model.OrganizationName,
		LogoRef:          model.LogoRef,
		ThemeID:          model.ThemeID,
		ViewMode:         model.ViewMode,
		Subjects:         []domain.Subject{},
		Categories:       []domain.Category{},
		UpdatedAt:        model.UpdatedAt,
	}

	if len(model.Subjects) > 0 {
		if err := json.Unmarshal(model.Subjects, &c.Subjects); err != nil {
			return nil, fmt.Errorf("decode subjects: %w", err)
		}
	}
	if len(model.Categories) > 0 {
		if err := json.Unmarshal(model.Categories, &c.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}

	return c, nil
}

func toDBModel(c *domain.Config) (*Config, error) {
	subjects, err := json.Marshal(nonNil(c.Subjects))
	if err != nil {
		return nil, fmt.Errorf("encode subjects: %w", err)
	}
	categories, err := json.Marshal(nonNil(c.Categories))
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}

	return &Config{
		OwnerID:          c.OwnerID,
		OrganizationName: c.OrganizationName,
		LogoRef:          c.LogoRef,
		ThemeID:          c.ThemeID,
		ViewMode:         c.ViewMode,
		Subjects:         subjects,
		Categories:       categories,
		UpdatedAt:        c.UpdatedAt,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
