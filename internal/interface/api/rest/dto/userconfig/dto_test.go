package userconfig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"academic-hub/internal/domain/userconfig"
)

func TestMergeInto(t *testing.T) {
	current := userconfig.Default(uuid.New())
	theme := userconfig.ThemeLight

	got := MergeInto(*current, Request{ThemeID: &theme})
	assert.Equal(t, userconfig.ThemeLight, got.ThemeID)
	assert.Equal(t, current.OrganizationName, got.OrganizationName)
	assert.Equal(t, current.Subjects, got.Subjects)
	assert.Equal(t, userconfig.ThemeDark, current.ThemeID, "current must not change")

	got = MergeInto(*current, Request{Subjects: []Subject{}})
	assert.Empty(t, got.Subjects)
	assert.Len(t, current.Subjects, 4)
}

func TestToResponseConfig(t *testing.T) {
	got := ToResponseConfig(*userconfig.Default(uuid.New()))
	assert.Len(t, got.Categories, 6)
	assert.Len(t, got.SubjectTabs, 5)
	for _, c := range got.SubjectTabs {
		assert.NotEqual(t, "archives", c.Key)
	}
}
