package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Workspace summarizes the owner's configuration for the shell header.
	Workspace struct {
		OrganizationName string `json:"organization_name"`
		LogoRef          string `json:"logo_ref,omitempty"`
		ThemeID          string `json:"theme_id"`
		ViewMode         string `json:"view_mode"`
		Subjects         int    `json:"subjects"`
	}
	Me struct {
		UUID        uuid.UUID  `json:"uuid"`
		Email       string     `json:"email"`
		Role        string     `json:"role"`
		MemberSince time.Time  `json:"member_since"`
		Workspace   *Workspace `json:"workspace,omitempty"`
	}
)
