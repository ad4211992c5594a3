// auth_controller_test.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/application/services"
	domain "academic-hub/internal/domain/user"
	"academic-hub/internal/interface/api/rest/dto/auth"
)

type fakeAuthService struct {
	GenerateTokenFunc func(u *domain.User, password string) (string, error)
	HashPasswordFunc  func(password string) (string, error)
}

func (f *fakeAuthService) GenerateToken(u *domain.User, password string) (string, error) {
	return f.GenerateTokenFunc(u, password)
}

func (f *fakeAuthService) HashPassword(password string) (string, error) {
	if f.HashPasswordFunc == nil {
		return "hashed:" + password, nil
	}
	return f.HashPasswordFunc(password)
}

func newRouterWithController(t *testing.T, us ports.UserService, as ports.Auth) (*gin.Engine, *AuthController) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	ac := &AuthController{
		logger:      zap.NewNop(),
		userService: us,
		authService: as,
	}
	r.POST("/login", ac.LoginHandler)
	r.POST("/register", ac.RegisterHandler)
	return r, ac
}

func doPOST(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var b []byte
	switch v := body.(type) {
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func validLogin() auth.LoginRequest {
	return auth.LoginRequest{
		Email:    "user@example.com",
		Password: "VeryStrongPassw0rd!",
	}
}

type wantJSON struct {
	code        int
	jsonEq      map[string]any
	jsonHasKeys []string
}

func assertJSON(t *testing.T, rr *httptest.ResponseRecorder, want wantJSON) {
	t.Helper()
	require.Equal(t, want.code, rr.Code, rr.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	for k, v := range want.jsonEq {
		assert.Equal(t, v, resp[k], "field %q mismatch", k)
	}
	for _, k := range want.jsonHasKeys {
		assert.Contains(t, resp, k, "expected key %q", k)
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	type fields struct {
		findByEmail   func(ctx context.Context, email string) (*domain.User, error)
		generateToken func(u *domain.User, password string) (string, error)
	}

	noUser := func(ctx context.Context, email string) (*domain.User, error) { return nil, nil }
	noToken := func(u *domain.User, password string) (string, error) { return "", nil }

	tests := []struct {
		name   string
		body   any
		fields fields
		want   wantJSON
	}{
		{
			name:   "invalid JSON",
			body:   "{bad json",
			fields: fields{findByEmail: noUser, generateToken: noToken},
			want: wantJSON{
				code:   http.StatusBadRequest,
				jsonEq: map[string]any{"error": "invalid json"},
			},
		},
		{
			name:   "validation error",
			body:   auth.LoginRequest{Email: "not-an-email", Password: ""},
			fields: fields{findByEmail: noUser, generateToken: noToken},
			want: wantJSON{
				code:        http.StatusBadRequest,
				jsonHasKeys: []string{"error", "details"},
			},
		},
		{
			name: "FindByEmail error -> 500",
			body: validLogin(),
			fields: fields{
				findByEmail: func(ctx context.Context, email string) (*domain.User, error) {
					return nil, errors.New("db error")
				},
				generateToken: noToken,
			},
			want: wantJSON{
				code:   http.StatusInternalServerError,
				jsonEq: map[string]any{"error": "failed to get a user"},
			},
		},
		{
			name: "unknown email -> 401",
			body: validLogin(),
			fields: fields{
				findByEmail: noUser,
				generateToken: func(u *domain.User, password string) (string, error) {
					if u == nil {
						return "", services.ErrInvalidCredentials
					}
					return "tok", nil
				},
			},
			want: wantJSON{
				code:   http.StatusUnauthorized,
				jsonEq: map[string]any{"error": services.ErrInvalidCredentials.Error()},
			},
		},
		{
			name: "GenerateToken ErrFailedToGenerateToken -> 500",
			body: validLogin(),
			fields: fields{
				findByEmail: func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{}, nil
				},
				generateToken: func(u *domain.User, password string) (string, error) {
					return "", services.ErrFailedToGenerateToken
				},
			},
			want: wantJSON{
				code:        http.StatusInternalServerError,
				jsonHasKeys: []string{"error"},
			},
		},
		{
			name: "success",
			body: validLogin(),
			fields: fields{
				findByEmail: func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{}, nil
				},
				generateToken: func(u *domain.User, password string) (string, error) {
					return "tok_123", nil
				},
			},
			want: wantJSON{
				code:   http.StatusOK,
				jsonEq: map[string]any{"access_token": "tok_123", "token_type": "Bearer"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{FindByEmailFunc: tt.fields.findByEmail}
			as := &fakeAuthService{GenerateTokenFunc: tt.fields.generateToken}

			r, _ := newRouterWithController(t, us, as)
			rr := doPOST(t, r, "/login", tt.body)

			assertJSON(t, rr, tt.want)
		})
	}
}

func TestAuthController_RegisterHandler(t *testing.T) {
	created := &domain.User{Email: "user@example.com", Role: domain.RoleOwner}

	tests := []struct {
		name     string
		body     any
		register func(ctx context.Context, email, hash string) (*domain.User, error)
		hash     func(password string) (string, error)
		want     wantJSON
	}{
		{
			name: "invalid JSON",
			body: "{",
			want: wantJSON{code: http.StatusBadRequest, jsonEq: map[string]any{"error": "invalid json"}},
		},
		{
			name: "weak password",
			body: auth.RegisterRequest{Email: "user@example.com", Password: "short"},
			want: wantJSON{code: http.StatusBadRequest, jsonHasKeys: []string{"details"}},
		},
		{
			name: "email taken -> 409",
			body: auth.RegisterRequest{Email: "user@example.com", Password: "VeryStrongPassw0rd!"},
			register: func(context.Context, string, string) (*domain.User, error) {
				return nil, domain.ErrEmailAlreadyExists
			},
			want: wantJSON{code: http.StatusConflict, jsonEq: map[string]any{"error": domain.ErrEmailAlreadyExists.Error()}},
		},
		{
			name: "hash failure -> 500",
			body: auth.RegisterRequest{Email: "user@example.com", Password: "VeryStrongPassw0rd!"},
			hash: func(string) (string, error) { return "", errors.New("rng") },
			want: wantJSON{code: http.StatusInternalServerError, jsonEq: map[string]any{"error": "failed to create a user"}},
		},
		{
			name: "created",
			body: auth.RegisterRequest{Email: "user@example.com", Password: "VeryStrongPassw0rd!"},
			register: func(_ context.Context, email, hash string) (*domain.User, error) {
				if hash != "hashed:VeryStrongPassw0rd!" {
					return nil, errors.New("plain password leaked")
				}
				return created, nil
			},
			want: wantJSON{code: http.StatusCreated, jsonEq: map[string]any{"access_token": "tok_new", "token_type": "Bearer"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{RegisterFunc: tt.register}
			as := &fakeAuthService{
				HashPasswordFunc: tt.hash,
				GenerateTokenFunc: func(u *domain.User, password string) (string, error) {
					require.Equal(t, created, u)
					return "tok_new", nil
				},
			}

			r, _ := newRouterWithController(t, us, as)
			assertJSON(t, doPOST(t, r, "/register", tt.body), tt.want)
		})
	}
}
