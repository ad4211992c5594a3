package userconfig

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"academic-hub/internal/domain/filerecord"
)

const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"

	ViewList = "list"
	ViewGrid = "grid"
)

var slugSepRe = regexp.MustCompile(`[^a-z0-9]+`)

type (
	Subject struct {
		ID      string `json:"id" validate:"required,max=64"`
		Name    string `json:"name" validate:"required,max=128"`
		IconKey string `json:"icon_key" validate:"max=64"`
	}
	Category struct {
		Key     string `json:"key" validate:"required,max=64"`
		Label   string `json:"label" validate:"required,max=128"`
		IconKey string `json:"icon_key" validate:"max=64"`
	}
	Config struct {
		OwnerID          uuid.UUID  `json:"-"`
		OrganizationName string     `json:"organization_name" validate:"required,max=128"`
		LogoRef          string     `json:"logo_ref,omitempty" validate:"omitempty,url"`
		ThemeID          string     `json:"theme_id" validate:"oneof=dark light system"`
		ViewMode         string     `json:"view_mode" validate:"oneof=list grid"`
		Subjects         []Subject  `json:"subjects" validate:"unique=ID,dive"`
		Categories       []Category `json:"categories" validate:"min=1,unique=Key,dive"`
		UpdatedAt        time.Time  `json:"updated_at"`
	}
)

// Default is the configuration a new owner starts with.
func Default(ownerID uuid.UUID) *Config {
	return &Config{
		OwnerID:          ownerID,
		OrganizationName: "Academia",
		ThemeID:          ThemeDark,
		ViewMode:         ViewList,
		Subjects: []Subject{
			{ID: "algebra", Name: "Álgebra", IconKey: "calculator"},
			{ID: "geo-trig", Name: "Geo. y Trigonometría", IconKey: "triangle"},
			{ID: "geo-analitica", Name: "Geometría Analítica", IconKey: "chart-line"},
			{ID: "calc-dif", Name: "Cálculo Diferencial", IconKey: "function"},
		},
		Categories: []Category{
			{Key: filerecord.CategoryTasks, Label: "Tareas", IconKey: "clipboard"},
			{Key: filerecord.CategorySolutions, Label: "Soluciones", IconKey: "check"},
			{Key: filerecord.CategoryControlExams, Label: "Exámenes de control", IconKey: "file-text"},
			{Key: filerecord.CategoryEtsExams, Label: "Exámenes ETS", IconKey: "file-badge"},
			{Key: filerecord.CategoryReferences, Label: "Referencias", IconKey: "book"},
			{Key: filerecord.CategoryArchives, Label: "Archivos", IconKey: "archive"},
		},
	}
}

func (c *Config) Clone() *Config {
	out := *c
	out.Subjects = slices.Clone(c.Subjects)
	out.Categories = slices.Clone(c.Categories)
	return &out
}

func (c *Config) HasSubject(id string) bool {
	return slices.ContainsFunc(c.Subjects, func(s Subject) bool { return s.ID == id })
}

// SubjectTabs is the category list shown inside a subject; archives live outside subjects.
func (c *Config) SubjectTabs() []Category {
	return slices.DeleteFunc(slices.Clone(c.Categories), func(cat Category) bool {
		return cat.Key == filerecord.CategoryArchives
	})
}

// RemoveSubject reports false when id is unknown.
func (c *Config) RemoveSubject(id string) bool {
	n := len(c.Subjects)
	c.Subjects = slices.DeleteFunc(c.Subjects, func(s Subject) bool { return s.ID == id })
	return len(c.Subjects) != n
}

// Slug turns a display name into a subject id: "Cálculo Integral" -> "calculo-integral".
func Slug(name string) string {
	s := filerecord.Fold(strings.ToLower(strings.TrimSpace(name)))
	s = slugSepRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
