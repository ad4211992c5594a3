package user

import (
	"academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
)

// ToMe leaves Workspace nil when cfg is nil.
func ToMe(u user.User, cfg *userconfig.Config) Me {
	me := Me{
		UUID:        u.UUID,
		Email:       u.Email,
		Role:        u.Role,
		MemberSince: u.CreatedAt,
	}
	if cfg != nil {
		me.Workspace = &Workspace{
			OrganizationName: cfg.OrganizationName,
			LogoRef:          cfg.LogoRef,
			ThemeID:          cfg.ThemeID,
			ViewMode:         cfg.ViewMode,
			Subjects:         len(cfg.Subjects),
		}
	}
	return me
}
