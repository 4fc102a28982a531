package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/config"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAuthService struct {
	signupErr error
	loginUser *domain.User
	loginErr  error
	admin     *domain.Admin
	adminErr  error
	profile   *domain.User
	profErr   error
}

func (m *mockAuthService) Signup(ctx context.Context, req *domain.SignupRequest) error {
	return m.signupErr
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	return m.loginUser, m.loginErr
}

func (m *mockAuthService) AdminLogin(ctx context.Context, userName, password string) (*domain.Admin, error) {
	return m.admin, m.adminErr
}

func (m *mockAuthService) Profile(ctx context.Context, userName string) (*domain.User, error) {
	return m.profile, m.profErr
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(&config.AuthConfig{
		JWTSecret:       "test-secret-test-secret-test-secret",
		TokenTTLMinutes: 60,
	})
}

func newAuthHandler(svc AuthServiceInterface) *AuthHandler {
	return NewAuthHandlerWithMocks(svc, testIssuer(), zap.NewNop())
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAuthHandler_Signup(t *testing.T) {
	body := domain.SignupRequest{
		FullName:      "Asha Kumari",
		College:       "PES University",
		Branch:        "CSE",
		RollNo:        "PES12345",
		YearOfPassing: "2025",
		PhoneLogin:    "9876543210",
		PhoneWhatsapp: "9876543210",
		UserName:      "asha.k",
		Password:      "secret123",
	}

	t.Run("created", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{})
		rec := postJSON(t, h.Signup, "/api/v1/auth/signup", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("username taken", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{signupErr: service.ErrConflict})
		rec := postJSON(t, h.Signup, "/api/v1/auth/signup", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		bad := body
		bad.Password = "short"
		h := newAuthHandler(&mockAuthService{})
		rec := postJSON(t, h.Signup, "/api/v1/auth/signup", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr domain.APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Contains(t, apiErr.Errors, "password")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	body := domain.LoginRequest{Identifier: "asha.k", Password: "secret123"}

	t.Run("success returns token and profile", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{loginUser: &domain.User{
			UserName: "asha.k",
			FullName: "Asha Kumari",
			Role:     domain.RoleStudent,
			Status:   domain.StatusApproved,
		}})
		rec := postJSON(t, h.Login, "/api/v1/auth/login", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp domain.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, "asha.k", resp.User.UserName)

		session, err := testIssuer().Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, session.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{loginErr: service.ErrNotFound})
		rec := postJSON(t, h.Login, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
		rec := postJSON(t, h.Login, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("pending approval", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{loginErr: service.ErrNotApproved})
		rec := postJSON(t, h.Login, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	body := domain.AdminLoginRequest{UserName: "admin", Password: "adminpass"}

	t.Run("success carries admin role", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{admin: &domain.Admin{UserName: "admin"}})
		rec := postJSON(t, h.AdminLogin, "/api/v1/auth/admin/login", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp domain.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		session, err := testIssuer().Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, session.Role)
	})

	t.Run("unknown admin and bad password look identical", func(t *testing.T) {
		for _, loginErr := range []error{service.ErrNotFound, service.ErrInvalidCredentials} {
			h := newAuthHandler(&mockAuthService{adminErr: loginErr})
			rec := postJSON(t, h.AdminLogin, "/api/v1/auth/admin/login", body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("without auth context", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()
		h.Me(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("student loads profile row", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{profile: &domain.User{
			UserName: "asha.k",
			FullName: "Asha Kumari",
			Role:     domain.RoleStudent,
			Status:   domain.StatusApproved,
		}})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{
			UserName: "asha.k", Role: domain.RoleStudent,
		})
		rec := httptest.NewRecorder()
		h.Me(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "Asha Kumari", dto.FullName)
	})

	t.Run("admin is synthesized without a profile row", func(t *testing.T) {
		h := newAuthHandler(&mockAuthService{profErr: service.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{
			UserName: "admin", FullName: "admin", Role: domain.RoleAdmin,
		})
		rec := httptest.NewRecorder()
		h.Me(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, string(domain.RoleAdmin), dto.Role)
	})
}
