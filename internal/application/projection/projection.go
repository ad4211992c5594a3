// Package projection derives the visible file list from an owner's record set.
// Everything here is pure: no I/O, no shared state, safe to call per keystroke.
package projection

import (
	"errors"
	"slices"
	"strings"

	"academic-hub/internal/domain/filerecord"
)

type Kind string

const (
	KindSubject   Kind = "subject"
	KindCategory  Kind = "category"
	KindAllActive Kind = "all"
	KindFavorites Kind = "favorites"
	KindTrash     Kind = "trash"
)

var ErrInvalidScope = errors.New("invalid scope")

type Scope struct {
	Kind      Kind
	SubjectID string
	Category  filerecord.Category
}

func Subject(subjectID string, category filerecord.Category) Scope {
	return Scope{Kind: KindSubject, SubjectID: subjectID, Category: category}
}
func Category(category filerecord.Category) Scope {
	return Scope{Kind: KindCategory, Category: category}
}
func AllActive() Scope { return Scope{Kind: KindAllActive} }
func Favorites() Scope { return Scope{Kind: KindFavorites} }
func Trash() Scope     { return Scope{Kind: KindTrash} }

// ParseScope builds a scope from request parameters. An empty kind means all active.
func ParseScope(kind, subjectID, category string) (Scope, error) {
	switch Kind(kind) {
	case "", KindAllActive:
		return AllActive(), nil
	case KindFavorites:
		return Favorites(), nil
	case KindTrash:
		return Trash(), nil
	case KindCategory:
		if category == "" {
			return Scope{}, errors.Join(ErrInvalidScope, errors.New("category is required"))
		}
		return Category(category), nil
	case KindSubject:
		if subjectID == "" || category == "" {
			return Scope{}, errors.Join(ErrInvalidScope, errors.New("subject and category are required"))
		}
		return Subject(subjectID, category), nil
	}

	return Scope{}, errors.Join(ErrInvalidScope, errors.New("unknown scope "+kind))
}

func (s Scope) IsTrash() bool { return s.Kind == KindTrash }

func (s Scope) includes(f *filerecord.FileRecord) bool {
	if s.IsTrash() {
		return f.IsTrashed()
	}
	if f.IsTrashed() {
		return false
	}

	switch s.Kind {
	case KindSubject:
		return f.SubjectID == s.SubjectID && f.Category == s.Category
	case KindCategory:
		return f.Category == s.Category
	case KindFavorites:
		return f.IsFavorite
	default:
		return true
	}
}

// Project filters records by scope and query and orders them most recent first:
// by upload time for active scopes, by deletion time for the trash.
// The input slice is never reordered.
func Project(records filerecord.FileRecords, scope Scope, query string) filerecord.FileRecords {
	q := Normalize(query)

	out := make(filerecord.FileRecords, 0, len(records))
	for _, f := range records {
		if f == nil || !scope.includes(f) || !Matches(f, q) {
			continue
		}
		out = append(out, f)
	}

	if scope.IsTrash() {
		slices.SortStableFunc(out, func(a, b *filerecord.FileRecord) int {
			return b.DeletedAt.Compare(*a.DeletedAt)
		})
	} else {
		slices.SortStableFunc(out, func(a, b *filerecord.FileRecord) int {
			return b.UploadedAt.Compare(a.UploadedAt)
		})
	}

	return out
}

// Matches reports whether an already normalized query hits the name or a tag.
func Matches(f *filerecord.FileRecord, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	if strings.Contains(Normalize(f.Name), normalizedQuery) {
		return true
	}
	return slices.ContainsFunc(f.Tags, func(tag string) bool {
		return strings.Contains(Normalize(tag), normalizedQuery)
	})
}

// Normalize strips diacritics, lower-cases and trims s. It is idempotent.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(filerecord.Fold(s)))
}
