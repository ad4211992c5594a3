package userconfig

import (
	"time"

	"academic-hub/internal/domain/userconfig"
)

type (
	Subject struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		IconKey string `json:"icon_key"`
	}
	Category struct {
		Key     string `json:"key"`
		Label   string `json:"label"`
		IconKey string `json:"icon_key"`
	}
	// Request replaces the whole document. Omitted lists keep their stored value.
	Request struct {
		OrganizationName *string    `json:"organization_name"`
		LogoRef          *string    `json:"logo_ref"`
		ThemeID          *string    `json:"theme_id"`
		ViewMode         *string    `json:"view_mode"`
		Subjects         []Subject  `json:"subjects"`
		Categories       []Category `json:"categories"`
	}
	SubjectRequest struct {
		Name    string `json:"name"`
		IconKey string `json:"icon_key"`
	}
	Config struct {
		OrganizationName string     `json:"organization_name"`
		LogoRef          string     `json:"logo_ref"`
		ThemeID          string     `json:"theme_id"`
		ViewMode         string     `json:"view_mode"`
		Subjects         []Subject  `json:"subjects"`
		Categories       []Category `json:"categories"`
		SubjectTabs      []Category `json:"subject_tabs"`
		UpdatedAt        time.Time  `json:"updated_at"`
	}
)

func ToResponseConfig(c userconfig.Config) Config {
	return Config{
		OrganizationName: c.OrganizationName,
		LogoRef:          c.LogoRef,
		ThemeID:          c.ThemeID,
		ViewMode:         c.ViewMode,
		Subjects:         toSubjects(c.Subjects),
		Categories:       toCategories(c.Categories),
		SubjectTabs:      toCategories(c.SubjectTabs()),
		UpdatedAt:        c.UpdatedAt,
	}
}

// MergeInto overlays the request on the current config, like a merge write:
// fields absent from the request keep the current value.
func MergeInto(current userconfig.Config, req Request) userconfig.Config {
	next := *current.Clone()
	if req.OrganizationName != nil {
		next.OrganizationName = *req.OrganizationName
	}
	if req.LogoRef != nil {
		next.LogoRef = *req.LogoRef
	}
	if req.ThemeID != nil {
		next.ThemeID = *req.ThemeID
	}
	if req.ViewMode != nil {
		next.ViewMode = *req.ViewMode
	}
	if req.Subjects != nil {
		next.Subjects = make([]userconfig.Subject, len(req.Subjects))
		for i, s := range req.Subjects {
			next.Subjects[i] = userconfig.Subject{ID: s.ID, Name: s.Name, IconKey: s.IconKey}
		}
	}
	if req.Categories != nil {
		next.Categories = make([]userconfig.Category, len(req.Categories))
		for i, c := range req.Categories {
			next.Categories[i] = userconfig.Category{Key: c.Key, Label: c.Label, IconKey: c.IconKey}
		}
	}

	return next
}

func toSubjects(in []userconfig.Subject) []Subject {
	out := make([]Subject, len(in))
	for i, s := range in {
		out[i] = Subject{ID: s.ID, Name: s.Name, IconKey: s.IconKey}
	}
	return out
}

func toCategories(in []userconfig.Category) []Category {
	out := make([]Category, len(in))
	for i, c := range in {
		out[i] = Category{Key: c.Key, Label: c.Label, IconKey: c.IconKey}
	}
	return out
}
