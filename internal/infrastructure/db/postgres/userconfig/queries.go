package userconfig

const (
	SelectConfig = `
		SELECT owner_id, organization_name, logo_ref, theme_id, view_mode, subjects, categories, updated_at
		FROM user_configs
		WHERE owner_id = $1
	`
	UpsertConfig = `
		INSERT INTO user_configs (owner_id, organization_name, logo_ref, theme_id, view_mode, subjects, categories, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
		ON CONFLICT (owner_id) DO UPDATE
		SET organization_name = EXCLUDED.organization_name,
		    logo_ref = EXCLUDED.logo_ref,
		    theme_id = EXCLUDED.theme_id,
		    view_mode = EXCLUDED.view_mode,
		    subjects = EXCLUDED.subjects,
		    categories = EXCLUDED.categories,
		    updated_at = EXCLUDED.updated_at
	`
)
