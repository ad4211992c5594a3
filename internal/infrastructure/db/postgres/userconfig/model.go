package userconfig

import (
	"time"

	"github.com/google/uuid"
)

type Config struct {
	OwnerID          uuid.UUID
	OrganizationName string
	LogoRef          string
	ThemeID          string
	ViewMode         string
	Subjects         []byte
	Categories       []byte
	UpdatedAt        time.Time
}
