package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic-hub/internal/interface/api/rest/dto/auth"
	"academic-hub/internal/interface/api/rest/dto/filerecord"
)

func ptr[T any](v T) *T { return &v }

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr []string
	}{
		{name: "ok", req: auth.LoginRequest{Email: "Ana@Example.com", Password: "password1"}},
		{name: "missing both", req: auth.LoginRequest{}, wantErr: []string{"email", "password"}},
		{name: "bad email", req: auth.LoginRequest{Email: "ana", Password: "password1"}, wantErr: []string{"email"}},
		{name: "short password", req: auth.LoginRequest{Email: "ana@example.com", Password: "short"}, wantErr: []string{"password"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.req)
			if tt.wantErr == nil {
				assert.Nil(t, errs)
				return
			}
			for _, k := range tt.wantErr {
				assert.Contains(t, errs, k)
			}
			assert.Len(t, errs, len(tt.wantErr))
		})
	}
}

func TestValidateRegister(t *testing.T) {
	assert.Nil(t, ValidateRegister(auth.RegisterRequest{Email: "ana@example.com", Password: "password1"}))
	assert.Contains(t, ValidateRegister(auth.RegisterRequest{Email: "ana@example.com", Password: strings.Repeat("x", 73)}), "password")
}

func TestValidateEdit(t *testing.T) {
	tests := []struct {
		name    string
		req     filerecord.EditRequest
		wantKey string
	}{
		{name: "empty patch", req: filerecord.EditRequest{}},
		{name: "rename", req: filerecord.EditRequest{Name: ptr("nuevo.pdf")}},
		{name: "blank name", req: filerecord.EditRequest{Name: ptr("  ")}, wantKey: "name"},
		{name: "blank category", req: filerecord.EditRequest{Category: ptr("")}, wantKey: "category"},
		{name: "blank subject", req: filerecord.EditRequest{SubjectID: ptr(" ")}, wantKey: "subject_id"},
		{name: "long notes", req: filerecord.EditRequest{Notes: ptr(strings.Repeat("n", 4001))}, wantKey: "notes"},
		{name: "too many tags", req: filerecord.EditRequest{Tags: ptr(make([]string, 21))}, wantKey: "tags"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateEdit(tt.req)
			if tt.wantKey == "" {
				assert.Nil(t, errs)
				return
			}
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestValidateUpload(t *testing.T) {
	assert.Nil(t, ValidateUpload("algebra", "tasks", []string{"parcial"}))

	errs := ValidateUpload("", "", []string{strings.Repeat("t", 33)})
	assert.Contains(t, errs, "subject_id")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "tags")
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(" "))
	assert.Equal(t, []string{"a", " b", ""}, ParseTags("a, b,"))
}

func TestParseForce(t *testing.T) {
	f, err := ParseForce("")
	require.NoError(t, err)
	assert.False(t, f)

	f, err = ParseForce("true")
	require.NoError(t, err)
	assert.True(t, f)

	_, err = ParseForce("yes please")
	require.Error(t, err)
}

func TestIsUUID(t *testing.T) {
	ok, _ := IsUUID("nope")
	assert.False(t, ok)
	ok, id := IsUUID("5f0c6a0e-8f7b-4f39-9a51-2b1d7a0f2c11")
	assert.True(t, ok)
	assert.Equal(t, "5f0c6a0e-8f7b-4f39-9a51-2b1d7a0f2c11", id.String())
}

func TestValidateQuery(t *testing.T) {
	require.NoError(t, ValidateQuery("álgebra"))
	require.Error(t, ValidateQuery(strings.Repeat("q", 129)))
}
