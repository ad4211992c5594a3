package userconfig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic-hub/internal/domain/filerecord"
)

func TestDefault(t *testing.T) {
	owner := uuid.New()
	cfg := Default(owner)

	assert.Equal(t, owner, cfg.OwnerID)
	assert.Equal(t, "Academia", cfg.OrganizationName)
	assert.Equal(t, ThemeDark, cfg.ThemeID)
	assert.Equal(t, ViewList, cfg.ViewMode)
	require.Len(t, cfg.Subjects, 4)
	assert.Equal(t, "algebra", cfg.Subjects[0].ID)
	require.Len(t, cfg.Categories, 6)
	assert.Equal(t, filerecord.CategoryArchives, cfg.Categories[5].Key)
}

func TestConfig_SubjectTabs(t *testing.T) {
	cfg := Default(uuid.New())
	tabs := cfg.SubjectTabs()

	require.Len(t, tabs, 5)
	for _, tab := range tabs {
		assert.NotEqual(t, filerecord.CategoryArchives, tab.Key)
	}
	assert.Len(t, cfg.Categories, 6, "source slice must stay intact")
}

func TestConfig_RemoveSubject(t *testing.T) {
	cfg := Default(uuid.New())

	assert.True(t, cfg.RemoveSubject("geo-trig"))
	assert.False(t, cfg.HasSubject("geo-trig"))
	assert.False(t, cfg.RemoveSubject("geo-trig"))
	assert.Len(t, cfg.Subjects, 3)
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	cfg := Default(uuid.New())
	cp := cfg.Clone()
	cp.Subjects[0].Name = "changed"

	assert.Equal(t, "Álgebra", cfg.Subjects[0].Name)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cálculo Integral", "calculo-integral"},
		{"  Geo. y Trigonometría ", "geo-y-trigonometria"},
		{"Física  II", "fisica-ii"},
		{"---", ""},
		{"Ñandú", "nandu"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
